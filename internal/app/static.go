package app

import (
	"io/fs"
	"net/http"
	"yatube/web"
)

func staticFiles() (http.FileSystem, error) {
	sub, err := fs.Sub(web.FS, "static")
	if err != nil {
		return nil, err
	}
	return http.FS(sub), nil
}
