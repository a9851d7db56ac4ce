package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Devon-White/aria2-options/internal/config"
	"github.com/Devon-White/aria2-options/internal/options"
)

// sphinxManual mirrors the markup of the published aria2c(1) page.
const sphinxManual = `<!DOCTYPE html>
<html>
<head><title>aria2c(1) &mdash; aria2 documentation</title></head>
<body class="wy-body-for-nav">
<nav class="wy-nav-side"><div class="wy-menu">Navigation entries that are long enough to look like content</div></nav>
<section class="wy-nav-content-wrap">
<div class="wy-nav-content"><div class="rst-content">
<div role="main" class="document" itemscope="itemscope">
<section id="options">
<h2>Options<a class="headerlink" href="#options" title="Permalink to this heading">¶</a></h2>
<section id="basic-options">
<h3>Basic Options<a class="headerlink" href="#basic-options" title="Permalink to this heading">¶</a></h3>
<dl class="std option">
<dt class="sig sig-object std" id="cmdoption-d">
<span class="sig-name descname"><span class="pre">-d</span></span><span class="sig-prename descclassname"></span><span class="sig-prename descclassname"><span class="pre">,</span> </span><span class="sig-name descname"><span class="pre">--dir</span></span><span class="sig-prename descclassname"><span class="pre">=&lt;DIR&gt;</span></span><a class="headerlink" href="#cmdoption-d" title="Permalink to this definition">¶</a></dt>
<dd><p>The directory to store the downloaded file. Default: <code class="docutils literal notranslate"><span class="pre">.</span></code></p>
</dd></dl>
</section>
<section id="rpc-options">
<h3>RPC Options<a class="headerlink" href="#rpc-options" title="Permalink to this heading">¶</a></h3>
<dl class="std option">
<dt class="sig sig-object std" id="cmdoption-enable-rpc">
<span class="sig-name descname"><span class="pre">--enable-rpc</span></span><span class="sig-prename descclassname"> <span class="pre">[true|false]</span></span><a class="headerlink" href="#cmdoption-enable-rpc" title="Permalink to this definition">¶</a></dt>
<dd><p>Enable JSON-RPC/XML-RPC server. See also <a class="reference internal" href="#cmdoption-rpc-listen-port"><span class="pre">--rpc-listen-port</span></a> option.</p>
</dd></dl>
</section>
</section>
</div>
</div></div>
</section>
</body>
</html>`

type record struct {
	Name     string
	Category string
	Type     string
	Default  *string
}

func records(opts []options.Option) []record {
	out := make([]record, 0, len(opts))
	for _, o := range opts {
		out = append(out, record{o.Name, o.Category, o.Type, o.Default})
	}
	return out
}

func TestLoadSphinxManualYieldsOptions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(sphinxManual))
	}))
	defer srv.Close()

	dot := "."
	want := []record{
		{Name: "dir", Category: "Basic Options", Type: "DIR", Default: &dot},
		{Name: "enable-rpc", Category: "RPC Options", Type: "boolean"},
	}

	tests := []struct {
		name string
		cfg  func(t *testing.T) config.Config
	}{
		{
			name: "local html file",
			cfg: func(t *testing.T) config.Config {
				cfg := config.Default()
				cfg.Input = writeTemp(t, "aria2c.html", sphinxManual)
				return cfg
			},
		},
		{
			name: "forced html",
			cfg: func(t *testing.T) config.Config {
				cfg := config.Default()
				cfg.Input = writeTemp(t, "aria2c.txt", sphinxManual)
				cfg.HTML = true
				return cfg
			},
		},
		{
			name: "url",
			cfg: func(t *testing.T) config.Config {
				cfg := config.Default()
				cfg.URL = srv.URL + "/manual/en/html/aria2c"
				cfg.PermalinkPrefix = srv.URL + "/"
				return cfg
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg(t)

			md, err := Load(context.Background(), &cfg)
			require.NoError(t, err)

			got := options.New(cfg.PermalinkPrefix, cfg.MaxDescription).Extract(md)

			require.Equal(t, want, records(got))
			assert.Equal(t, "The directory to store the downloaded file.", got[0].Description)
			assert.Contains(t, got[1].Description, "Enable JSON-RPC/XML-RPC server.")
			assert.NotContains(t, got[1].Description, "http")
			assert.NotContains(t, got[1].Description, "#cmdoption")
			assert.NotContains(t, got[1].Description, "¶")
		})
	}
}
