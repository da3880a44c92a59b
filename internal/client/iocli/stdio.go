package iocli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// Stdio реализует IO поверх произвольных reader/writer.
// Запись сериализована: фоновый refresh может печатать одновременно с командой.
type Stdio struct {
	reader *bufio.Reader
	out    io.Writer
	fd     int
	mu     sync.Mutex
}

// NewStdio returns IO bound to the process stdin/stdout
func NewStdio() *Stdio {
	return &Stdio{
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		fd:     int(os.Stdout.Fd()),
	}
}

// New returns IO over the given streams; Width reports 0
func New(in io.Reader, out io.Writer) *Stdio {
	return &Stdio{
		reader: bufio.NewReader(in),
		out:    out,
		fd:     -1,
	}
}

func (s *Stdio) Println(a ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintln(s.out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintf(s.out, format, a...)
}

func (s *Stdio) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.out.Write(p)
}

func (s *Stdio) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		s.Printf("%s", prompt)
	}

	line, err := s.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (s *Stdio) Width() int {
	if s.fd < 0 || !term.IsTerminal(s.fd) {
		return 0
	}
	w, _, err := term.GetSize(s.fd)
	if err != nil {
		return 0
	}
	return w
}
