package export

import (
	"io"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/trilex/internal/dictionary"
	"github.com/dshills/trilex/internal/store"
)

func writeJSON(w io.Writer, table *dictionary.Table[string]) error {
	buf := []byte("{}")
	var err error
	table.Each(func(key, text string) {
		if err == nil {
			buf, err = sjson.SetBytes(buf, store.EscapeKey(key), text)
		}
	})
	if err != nil {
		return err
	}
	_, err = w.Write(pretty.PrettyOptions(buf, &pretty.Options{Width: 80, Indent: "  "}))
	return err
}
