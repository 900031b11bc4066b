package output

import (
	"fmt"
	"io"

	"github.com/CodMac/mixin-lens/model"
)

// WriteText 每条诊断一行 "path:line:col: message [Inspection]"，最后输出汇总
func WriteText(w io.Writer, diags []model.Diagnostic) error {
	for _, d := range diags {
		if _, err := fmt.Fprintf(w, "%s: %s [%s]\n", position(d.Span), d.Message, d.Inspection); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d problem(s) found\n", len(diags))
	return err
}

func position(loc *model.Location) string {
	if loc == nil {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", loc.FilePath, loc.StartLine, loc.StartColumn+1)
}
