package pdf

import (
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Metadata holds the document information dictionary of a PDF.
type Metadata struct {
	Title        string            `json:"title,omitempty"`
	Author       string            `json:"author,omitempty"`
	Subject      string            `json:"subject,omitempty"`
	Keywords     string            `json:"keywords,omitempty"`
	Creator      string            `json:"creator,omitempty"`
	Producer     string            `json:"producer,omitempty"`
	CreationDate string            `json:"creation_date,omitempty"`
	ModDate      string            `json:"mod_date,omitempty"`
	Properties   map[string]string `json:"properties,omitempty"`
}

// readMetadata collects the info dictionary fields pdfcpu decoded during
// validation. Configuration also has a CreationDate, so the fields are read
// through XRefTable explicitly.
func readMetadata(ctx *model.Context) Metadata {
	m := Metadata{
		Title:        ctx.XRefTable.Title,
		Author:       ctx.XRefTable.Author,
		Subject:      ctx.XRefTable.Subject,
		Keywords:     ctx.XRefTable.Keywords,
		Creator:      ctx.XRefTable.Creator,
		Producer:     ctx.XRefTable.Producer,
		CreationDate: ctx.XRefTable.CreationDate,
		ModDate:      ctx.XRefTable.ModDate,
	}
	if len(ctx.Properties) > 0 {
		m.Properties = make(map[string]string, len(ctx.Properties))
		for k, v := range ctx.Properties {
			m.Properties[k] = v
		}
	}
	return m
}

// copyInfoDict copies the direct values of src's info dictionary into dst's,
// creating dst's dictionary when it has none. Values are copied as encoded so
// text strings keep their original encoding. pdfcpu's writer replaces
// CreationDate, ModDate and Producer when the output is saved.
func copyInfoDict(src, dst *model.Context) error {
	if src.Info == nil {
		return nil
	}
	srcInfo, err := src.DereferenceDict(*src.Info)
	if err != nil || srcInfo == nil {
		return err
	}

	entries := types.NewDict()
	for k, v := range srcInfo {
		o, err := src.Dereference(v)
		if err != nil || o == nil {
			continue
		}
		switch o.(type) {
		case types.StringLiteral, types.HexLiteral, types.Name, types.Boolean, types.Integer, types.Float:
			entries[k] = o
		}
	}
	if len(entries) == 0 {
		return nil
	}

	if dst.Info != nil {
		d, err := dst.DereferenceDict(*dst.Info)
		if err != nil {
			return err
		}
		if d != nil {
			for k, v := range entries {
				d[k] = v
			}
			return nil
		}
	}

	ir, err := dst.IndRefForNewObject(entries)
	if err != nil {
		return err
	}
	dst.Info = ir
	return nil
}
