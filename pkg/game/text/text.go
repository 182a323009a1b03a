// Package text holds the user-facing message catalog.
package text

import (
	_ "embed"

	"github.com/leonelquinteros/gotext"
)

//go:embed en.po
var enPO []byte

var catalog = load()

func load() *gotext.Po {
	po := gotext.NewPo()
	po.Parse(enPO)
	return po
}

// Get translates a message key. Unknown keys are returned unchanged, so a
// literal string can be passed through as well.
func Get(key string, vars ...interface{}) string {
	return catalog.Get(key, vars...)
}
