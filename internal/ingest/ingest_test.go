package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchPosting_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>
			<nav>Site nav</nav>
			<div class="job-description">
				<h1>Senior Go Engineer</h1>
				<p>Build    distributed services.</p>
			</div>
			<footer>Legal</footer>
		</body></html>`))
	}))
	defer server.Close()

	text, err := FetchPosting(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Contains(t, text, "Senior Go Engineer")
	assert.Contains(t, text, "Build distributed services.")
	assert.NotContains(t, text, "Site nav")
	assert.NotContains(t, text, "Legal")
}

func TestFetchPosting_InvalidURL(t *testing.T) {
	_, err := FetchPosting(context.Background(), "not-a-valid-url", nil)
	require.Error(t, err)

	var fetchErr *FetchError
	assert.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "invalid URL")
}

func TestFetchPosting_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := FetchPosting(context.Background(), server.URL, nil)
	require.Error(t, err)

	var fetchErr *FetchError
	assert.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "404")
}

func TestExtractJobText_FallsBackToBody(t *testing.T) {
	html := `<html><body><p>Plain posting text.</p><script>tracking()</script></body></html>`
	text, err := ExtractJobText(html)
	require.NoError(t, err)
	assert.Contains(t, text, "Plain posting text.")
	assert.NotContains(t, text, "tracking")
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "collapses space runs",
			input: "Senior   Engineer\r\nRemote   role",
			want:  "Senior Engineer\nRemote role",
		},
		{
			name:  "preserves bullets and headings",
			input: "# Requirements\n  - Go   experience\n- Postgres",
			want:  "# Requirements\n  - Go experience\n- Postgres",
		},
		{
			name:  "caps blank runs",
			input: "a\n\n\n\n\nb",
			want:  "a\n\nb",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.input))
		})
	}
}

func TestReadPostingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posting.txt")
	require.NoError(t, os.WriteFile(path, []byte("## Role\n- Go   services\n"), 0o644))

	text, err := ReadPostingFile(path)
	require.NoError(t, err)
	assert.Equal(t, "## Role\n- Go services", text)

	_, err = ReadPostingFile(filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
