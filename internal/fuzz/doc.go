// Package fuzztests houses Go fuzz harnesses for the front end
// (source -> lexer -> parser). They guard against panics, hangs and broken
// span invariants on arbitrary inputs.
//
// Назначение: прогонять байты через FileSet, лексер и парсер и проверять
// инварианты из internal/testkit.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
