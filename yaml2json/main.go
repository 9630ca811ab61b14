// Utility program to convert yaml on stdin to formatted json on stdout. Key order is preserved.
package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"os"

	"github.com/modil-io/devutils/value"
)

func main() {
	data, err := io.ReadAll(os.Stdin)
	if err == nil {
		var body value.Value
		if body, err = value.FromYAML(data); err == nil {
			var bs []byte
			if bs, err = value.ToJSON(body); err == nil {
				out := bytes.Buffer{}
				if err = json.Indent(&out, bs, ``, ` `); err == nil {
					if _, err = out.WriteTo(os.Stdout); err == nil {
						return
					}
				}
			}
		}
	}
	log.Fatal(err.Error())
}
