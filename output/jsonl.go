package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/CodMac/mixin-lens/model"
)

type JSONLWriter struct {
	encoder *json.Encoder
}

func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{encoder: json.NewEncoder(w)}
}

func (w *JSONLWriter) Write(v interface{}) error { return w.encoder.Encode(v) }

// WriteDiagnostics 每行一条 Diagnostic
func WriteDiagnostics(path string, diags []model.Diagnostic) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	writer := NewJSONLWriter(f)
	for i, d := range diags {
		if err := writer.Write(d); err != nil {
			return i, fmt.Errorf("write diagnostic: %w", err)
		}
	}
	return len(diags), nil
}

// relationRecord 导出用的扁平关系，只保留两端 QN
type relationRecord struct {
	Type     model.DependencyType `json:"Type"`
	Source   string               `json:"Source"`
	Target   string               `json:"Target"`
	Origin   model.Origin         `json:"TargetOrigin"`
	Location *model.Location      `json:"Location,omitempty"`
}

func WriteRelations(path string, rels []*model.DependencyRelation) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	writer := NewJSONLWriter(f)
	count := 0
	for _, rel := range rels {
		rec := relationRecord{
			Type:     rel.Type,
			Source:   rel.Source.QualifiedName,
			Target:   rel.Target.QualifiedName,
			Origin:   rel.Target.Origin,
			Location: rel.Location,
		}
		if err := writer.Write(rec); err != nil {
			return count, fmt.Errorf("write relation: %w", err)
		}
		count++
	}
	return count, nil
}
