// Package client embeds the browser live client.
package client

import (
	"bytes"
	"embed"
	"io/fs"
	"net/http"
	"time"
)

// ScriptName is the live client file served under the site root.
const ScriptName = "live.js"

//go:embed src/*.js
var assets embed.FS

// startup is the modification time reported for embedded files.
var startup = time.Now()

// Assets returns the embedded filesystem rooted at the script directory.
func Assets() fs.FS {
	fsys, err := fs.Sub(assets, "src")
	if err != nil {
		panic(err)
	}
	return fsys
}

// Script returns the live client source.
func Script() []byte {
	data, err := assets.ReadFile("src/" + ScriptName)
	if err != nil {
		panic(err)
	}
	return data
}

// ScriptHandler serves the live client with a short cache lifetime.
func ScriptHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=300")
		http.ServeContent(w, r, ScriptName, startup, bytes.NewReader(Script()))
	})
}

// FileNames lists the embedded files.
func FileNames() []string {
	entries, err := assets.ReadDir("src")
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names
}
