package exchange

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Request is one logical exchange supplied by the input source.
type Request struct {
	Sender    string
	Recipient string
	Sign      bool // default true
	Plaintext string
	Continue  bool // default false: stop after this exchange
}

// InputSource supplies exchange requests. Next returns io.EOF when the
// source is exhausted.
type InputSource interface {
	Next() (*Request, error)
}

// StaticSource serves a fixed list of requests. The Continue flag is
// derived from position: every request but the last continues.
type StaticSource struct {
	Requests []Request
	pos      int
}

func (s *StaticSource) Next() (*Request, error) {
	if s.pos >= len(s.Requests) {
		return nil, io.EOF
	}
	req := s.Requests[s.pos]
	s.pos++
	req.Continue = s.pos < len(s.Requests)
	return &req, nil
}

// PromptSource reads exchange fields interactively, one prompt per
// field. Empty answers fall back to the defaults: sign yes, continue no.
type PromptSource struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

func (s *PromptSource) Next() (*Request, error) {
	if s.reader == nil {
		s.reader = bufio.NewReader(s.In)
	}
	sender, err := s.prompt("Sender: ")
	if err != nil {
		return nil, err
	}
	recipient, err := s.prompt("Recipient: ")
	if err != nil {
		return nil, err
	}
	signAns, err := s.prompt("Sign the message? [Y/n]: ")
	if err != nil {
		return nil, err
	}
	plaintext, err := s.prompt("Message: ")
	if err != nil {
		return nil, err
	}
	contAns, err := s.prompt("Another exchange? [y/N]: ")
	if err != nil && err != io.EOF {
		return nil, err
	}
	return &Request{
		Sender:    sender,
		Recipient: recipient,
		Sign:      !isNo(signAns),
		Plaintext: plaintext,
		Continue:  isYes(contAns),
	}, nil
}

func (s *PromptSource) prompt(label string) (string, error) {
	fmt.Fprint(s.Out, label)
	line, err := s.reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil && line == "" {
		return "", err
	}
	return line, nil
}

func isNo(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "n", "no", "false":
		return true
	}
	return false
}

func isYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true":
		return true
	}
	return false
}
