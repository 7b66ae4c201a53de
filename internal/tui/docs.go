package tui

import (
	"embed"
	"fmt"
	"sort"

	"github.com/charmbracelet/glamour"
)

// Документация поставляется вместе с бинарником: страница — один markdown
// файл, порядок задается числовым префиксом имени.
//
//go:embed docs/*.md
var docsFS embed.FS

const docsDir = "docs"

// renderDocPages читает встроенные markdown файлы и рендерит каждый
// в отдельную страницу для терминала.
func renderDocPages(width int) ([]string, error) {
	entries, err := docsFS.ReadDir(docsDir)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать встроенную документацию: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать рендерер markdown: %w", err)
	}

	pages := make([]string, 0, len(entries))
	for _, entry := range entries {
		raw, errRead := docsFS.ReadFile(docsDir + "/" + entry.Name())
		if errRead != nil {
			return nil, fmt.Errorf("не удалось прочитать страницу %s: %w", entry.Name(), errRead)
		}
		rendered, errRender := renderer.Render(string(raw))
		if errRender != nil {
			return nil, fmt.Errorf("не удалось отрендерить страницу %s: %w", entry.Name(), errRender)
		}
		pages = append(pages, rendered)
	}
	return pages, nil
}
