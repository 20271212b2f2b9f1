package lexer

import (
	"arithlex/internal/diag"
	"arithlex/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil, тогда ошибки игнорируем (но продолжаем лексить)
}

func (lx *Lexer) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.NewReportBuilder(lx.opts.Reporter, sev, code, sp, msg).Emit()
	}
}
