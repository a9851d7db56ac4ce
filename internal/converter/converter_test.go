package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertHTML(t *testing.T) {
	html := `<h3>Basic Options</h3>
<nav>skip me</nav>
<p>The directory to store the downloaded file.</p>`

	md, err := ConvertHTML(html, "https://aria2.github.io/manual/en/html/aria2c.html")

	require.NoError(t, err)
	assert.Contains(t, md, "### Basic Options")
	assert.Contains(t, md, "The directory to store the downloaded file.")
	assert.NotContains(t, md, "skip me")
}

func TestCleanMarkdown(t *testing.T) {
	in := "\n\n## Options  \n\n\n\n\\--dir \\=<DIR> [¶]\t\nText\n\n"

	assert.Equal(t, "## Options\n\n\\--dir \\=<DIR> [¶]\nText", CleanMarkdown(in))
}

func TestDomainFromURL(t *testing.T) {
	assert.Equal(t, "https://aria2.github.io", domainFromURL("https://aria2.github.io/manual/en/html/aria2c.html"))
	assert.Equal(t, "", domainFromURL("docs/aria2c.html"))
	assert.Equal(t, "", domainFromURL(""))
}

func TestConvertHTMLKeepsDeclarationsParseable(t *testing.T) {
	md, err := ConvertHTML(`<h3>Basic Options</h3>
<p>--dir=&lt;DIR&gt; [¶]</p>
<p>The directory to store the downloaded file.</p>
<p>--enable-rpc [true|false] [¶]</p>
<p>Enable JSON-RPC/XML-RPC server.</p>`, "")

	require.NoError(t, err)
	assert.Contains(t, md, "\n--dir=<DIR> [¶]\n")
	assert.Contains(t, md, "\n--enable-rpc [true|false] [¶]\n")
	assert.NotContains(t, md, "&lt;")
}

func TestUnescapeDeclarations(t *testing.T) {
	in := "\\# Not a heading &lt;x&gt;\n\\--dir \\=&lt;DIR&gt; \\[¶\\]\n\\--log\\=\\<LOG\\> [¶]"

	assert.Equal(t,
		"\\# Not a heading &lt;x&gt;\n--dir =<DIR> [¶]\n--log=<LOG> [¶]",
		unescapeDeclarations(in))
}
