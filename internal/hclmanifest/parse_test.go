package hclmanifest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/connectgrid/internal/fields"
	"github.com/vk/connectgrid/internal/plugin"
)

const sampleManifest = `
plugin "mailer" {
  name = "Mailer"

  metadata {
    verified    = true
    published   = true
    description = "Send mail."
    category    = "communication"
    developer   = "acme"
  }

  config {
    field "from" {
      type        = string
      format      = "email"
      description = "Sender address"
    }

    field "smtp_url" {
      type   = string
      format = "url"
    }

    field "retries" {
      type     = number
      default  = 3
      optional = true
    }

    field "mode" {
      options = ["plain", "html"]
      default = "plain"
    }

    field "bcc" {
      type     = list(string)
      optional = true
    }

    field "headers" {
      type     = object
      nullable = true
    }
  }

  action "send" {
    description = "Deliver one message."
    handler     = "SendMail"

    input "to" {
      type   = string
      format = "email"
    }

    input "body" {
      type     = string
      optional = true
    }
  }
}
`

func TestParse_FullManifest(t *testing.T) {
	p, err := Parse(context.Background(), "mailer.hcl", []byte(sampleManifest))
	require.NoError(t, err)

	assert.Equal(t, "mailer", p.Slug)
	assert.Equal(t, "Mailer", p.Name)
	assert.True(t, p.Metadata.Verified)
	assert.Equal(t, "acme", p.Metadata.Developer)

	require.NotNil(t, p.ConfigSchema)
	require.Len(t, p.ConfigSchema.Fields, 6)

	names := make([]string, 0, 6)
	for _, f := range p.ConfigSchema.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"from", "smtp_url", "retries", "mode", "bcc", "headers"}, names,
		"config fields keep manifest order")

	require.Len(t, p.Actions, 1)
	a := p.Actions[0]
	assert.Equal(t, "send", a.Name)
	assert.Equal(t, "SendMail", a.Handler)
	require.NotNil(t, a.InputSchema)
	assert.Len(t, a.InputSchema.Fields, 2)

	require.NotNil(t, p.ActionByName("send"))
	assert.Nil(t, p.ActionByName("nope"))
}

func TestParse_DerivedFields(t *testing.T) {
	p, err := Parse(context.Background(), "mailer.hcl", []byte(sampleManifest))
	require.NoError(t, err)

	got := fields.Derive(p.ConfigSchema)
	require.Len(t, got, 6)

	byName := map[string]fields.Field{}
	for _, f := range got {
		byName[f.Name] = f
	}

	assert.Equal(t, fields.TypeEmail, byName["from"].Type)
	assert.True(t, byName["from"].Required)
	assert.Equal(t, "Sender address", byName["from"].Placeholder)

	assert.Equal(t, fields.TypeURL, byName["smtp_url"].Type)

	assert.Equal(t, fields.TypeNumber, byName["retries"].Type)
	assert.False(t, byName["retries"].Required)
	assert.Equal(t, 3, byName["retries"].Default)

	assert.Equal(t, fields.TypeEnum, byName["mode"].Type)
	assert.Equal(t, []string{"plain", "html"}, byName["mode"].Options)
	assert.Equal(t, "plain", byName["mode"].Default)
	assert.True(t, byName["mode"].Required, "a default alone does not make a field optional")

	assert.Equal(t, fields.TypeArray, byName["bcc"].Type)

	assert.Equal(t, fields.TypeObject, byName["headers"].Type)
	assert.False(t, byName["headers"].Required, "nullable renders as not required")
}

func TestParse_WrapperOrder(t *testing.T) {
	src := `
plugin "p" {
  name = "P"
  config {
    field "f" {
      type     = string
      default  = "d"
      optional = true
      nullable = true
    }
  }
  action "a" {
    handler = "H"
  }
}
`
	p, err := Parse(context.Background(), "p.hcl", []byte(src))
	require.NoError(t, err)

	n := p.ConfigSchema.Fields[0].Schema
	require.Equal(t, plugin.KindOptional, n.Kind)
	require.Equal(t, plugin.KindNullable, n.Inner.Kind)
	require.Equal(t, plugin.KindDefault, n.Inner.Inner.Kind)
	require.Equal(t, plugin.KindString, n.Inner.Inner.Inner.Kind)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			"not hcl",
			`plugin "x" {`,
			"failed to parse",
		},
		{
			"no plugin block",
			`# empty`,
			"declares no plugin block",
		},
		{
			"empty name",
			`plugin "x" {
  name = ""
}`,
			"name must not be empty",
		},
		{
			"unknown format",
			`plugin "x" {
  name = "X"
  config {
    field "f" {
      type   = string
      format = "phone"
    }
  }
}`,
			`unknown string format "phone"`,
		},
		{
			"unknown type keyword",
			`plugin "x" {
  name = "X"
  config {
    field "f" {
      type = widget
    }
  }
}`,
			`unknown primitive type "widget"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(context.Background(), "bad.hcl", []byte(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParse_NoConfigBlock(t *testing.T) {
	src := `
plugin "bare" {
  name = "Bare"
  action "ping" {
    handler = "Ping"
  }
}
`
	p, err := Parse(context.Background(), "bare.hcl", []byte(src))
	require.NoError(t, err)
	require.NotNil(t, p.ConfigSchema)
	assert.Empty(t, p.ConfigSchema.Fields)
	assert.Empty(t, fields.Derive(p.ConfigSchema))
}
