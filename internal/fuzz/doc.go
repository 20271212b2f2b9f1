
// Package fuzztests houses Go fuzz harnesses that exercise the source -> lexer
// path. Its goal is to smoke test robustness and guard against panics, lost
// bytes or a second EOF on arbitrary inputs.
//
// Назначение: загружать байты в FileSet и прогонять их через лексер,
// проверяя инварианты спанов.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/diag, internal/token.

package fuzztests
