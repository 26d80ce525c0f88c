package server

import (
	"bytes"
	"fmt"
	"io/fs"
	"log"
	"mime"
	"net/http"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/json"
	"github.com/tdewolff/minify/v2/svg"
)

type asset struct {
	mediaType string
	content   []byte
}

// assets holds the frontend files, minified once at start up.
type assets struct {
	files   map[string]asset
	modTime time.Time
}

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("image/svg+xml", svg.Minify)
	m.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), js.Minify)
	m.AddFuncRegexp(regexp.MustCompile("[/+]json$"), json.Minify)
	return m
}

// loadAssets reads every file in fsys. Files the minifier understands are
// minified; a file that fails to minify is served as is.
func loadAssets(fsys fs.FS) (*assets, error) {
	m := newMinifier()
	a := &assets{files: make(map[string]asset), modTime: time.Now()}

	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}

		mediaType := mime.TypeByExtension(path.Ext(name))
		if mediaType == "" {
			mediaType = http.DetectContentType(content)
		}
		base, _, _ := strings.Cut(mediaType, ";")

		if out, err := m.Bytes(base, content); err == nil {
			content = out
		} else if err != minify.ErrNotExist {
			log.Printf("Warning: serving %s unminified: %v", name, err)
		}

		a.files["/"+name] = asset{mediaType: mediaType, content: content}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading frontend: %w", err)
	}
	return a, nil
}

func (a *assets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Path
	if strings.HasSuffix(name, "/") {
		name += "index.html"
	}
	f, ok := a.files[name]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", f.mediaType)
	http.ServeContent(w, r, name, a.modTime, bytes.NewReader(f.content))
}
