package driver

import (
	"encoding/json"
	"fmt"

	"arithlex/internal/diag"
	"arithlex/internal/observ"
	"arithlex/internal/source"
	"arithlex/internal/token"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// tokensSpan покрывает все токены файла (от первого до EOF).
func tokensSpan(file source.FileID, tokens []token.Token) source.Span {
	if len(tokens) == 0 {
		return source.Span{File: file}
	}
	return tokens[0].Span.Cover(tokens[len(tokens)-1].Span)
}

func appendTimingDiagnostic(bag *diag.Bag, span source.Span, payload timingPayload) {
	if bag == nil {
		return
	}
	if payload.Kind == "" {
		payload.Kind = "tokenize"
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)
	if payload.Path != "" {
		msg = fmt.Sprintf("%s, %s", msg, payload.Path)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	entry := diag.New(diag.SevInfo, diag.ObsTimings, span, msg).WithNote(span, string(data))
	if bag.Add(entry) {
		return
	}
	// Тайминги не должны теряться из-за лимита
	overflow := diag.NewBag(1)
	overflow.Add(entry)
	bag.Merge(overflow)
}
