package iocli

//go:generate moq -out io_mock.go . IO

// IO консоль, через которую CLI общается с пользователем
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	// ReadLine возвращает io.EOF, когда ввод закончился
	ReadLine(prompt string) (string, error)
	Write(p []byte) (n int, err error)
	// Width ширина терминала в колонках, 0 если вывод не терминал
	Width() int
}
