// Package templates 内嵌 HTML 页面模板
package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Parse 编译全部页面，按文件名引用
func Parse() (*template.Template, error) {
	return template.New("").ParseFS(files, "*.html")
}

func MustParse() *template.Template {
	return template.Must(Parse())
}
