// Package smtpconn implements the minimal SMTP client side used for
// mailbox probing: one short-lived session per probe, HELO dialect,
// no message data. Each command gets its own deadline.
package smtpconn

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"time"
)

// UnexpectedCodeError is returned when the server answers a command with a
// reply code outside the accepted set for that command.
type UnexpectedCodeError struct {
	Cmd  string
	Code int
	Msg  string
}

func (e *UnexpectedCodeError) Error() string {
	return fmt.Sprintf("smtpconn: %s answered %d %s", e.Cmd, e.Code, e.Msg)
}

// Session is a live SMTP session. It is not safe for concurrent use.
type Session struct {
	conn    net.Conn
	reader  *bufio.Reader
	writer  *bufio.Writer
	timeout time.Duration
	closed  bool
}

// Open dials address, reads the greeting and returns a ready Session.
// A nil dial falls back to net.DialTimeout. The greeting must be 2xx;
// anything else closes the connection and surfaces as UnexpectedCodeError.
func Open(address string, timeout time.Duration, dial func(network, address string, timeout time.Duration) (net.Conn, error)) (*Session, error) {
	if dial == nil {
		dial = net.DialTimeout
	}
	netConn, err := dial("tcp", address, timeout)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", address, err)
	}

	s := &Session{
		conn:    netConn,
		reader:  bufio.NewReader(netConn),
		writer:  bufio.NewWriter(netConn),
		timeout: timeout,
	}

	_ = netConn.SetDeadline(time.Now().Add(timeout))
	code, msg, err := s.read()
	if err != nil {
		_ = netConn.Close()
		return nil, fmt.Errorf("read greeting: %w", err)
	}
	if code/100 != 2 {
		_ = netConn.Close()
		return nil, &UnexpectedCodeError{Cmd: "greeting", Code: code, Msg: msg}
	}
	return s, nil
}

// Helo introduces the client. The server must answer exactly 250.
func (s *Session) Helo(domain string) error {
	code, msg, err := s.cmd("HELO %s", domain)
	if err != nil {
		return fmt.Errorf("HELO: %w", err)
	}
	if code != 250 {
		return &UnexpectedCodeError{Cmd: "HELO", Code: code, Msg: msg}
	}
	return nil
}

// MailFrom opens a mail transaction. The server must answer exactly 250.
func (s *Session) MailFrom(addr string) error {
	code, msg, err := s.cmd("MAIL FROM:<%s>", addr)
	if err != nil {
		return fmt.Errorf("MAIL FROM: %w", err)
	}
	if code != 250 {
		return &UnexpectedCodeError{Cmd: "MAIL FROM", Code: code, Msg: msg}
	}
	return nil
}

// RcptTo names the probed recipient and returns the server's reply code and
// text. Judging the code is the caller's job; only transport failures error.
func (s *Session) RcptTo(addr string) (int, string, error) {
	code, msg, err := s.cmd("RCPT TO:<%s>", addr)
	if err != nil {
		return 0, "", fmt.Errorf("RCPT TO: %w", err)
	}
	return code, msg, nil
}

// Quit sends QUIT best-effort and closes the connection. Safe to call on
// every exit path, including more than once.
func (s *Session) Quit() {
	if s.closed {
		return
	}
	s.closed = true
	_ = s.conn.SetDeadline(time.Now().Add(2 * time.Second))
	_, _ = s.writer.WriteString("QUIT\r\n")
	_ = s.writer.Flush()
	_ = s.conn.Close()
}

// cmd sends one command line and reads the reply, under a fresh deadline.
func (s *Session) cmd(format string, args ...any) (int, string, error) {
	if err := s.conn.SetDeadline(time.Now().Add(s.timeout)); err != nil {
		return 0, "", fmt.Errorf("set deadline: %w", err)
	}
	if _, err := s.writer.WriteString(fmt.Sprintf(format, args...) + "\r\n"); err != nil {
		return 0, "", err
	}
	if err := s.writer.Flush(); err != nil {
		return 0, "", err
	}
	return s.read()
}

// read consumes one (possibly multi-line) SMTP reply. The returned text has
// the per-line code prefixes stripped, continuation lines joined with a space.
func (s *Session) read() (int, string, error) {
	var (
		code  int
		parts []string
	)
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return 0, "", fmt.Errorf("read response: %w", err)
		}
		line = strings.TrimRight(line, "\r\n")
		if len(line) < 3 {
			return 0, "", fmt.Errorf("malformed response line %q", line)
		}
		if _, err := fmt.Sscanf(line[:3], "%d", &code); err != nil {
			return 0, "", fmt.Errorf("malformed response code %q", line[:3])
		}
		if len(line) > 4 {
			parts = append(parts, line[4:])
		}
		// A dash after the code marks a continuation line
		if len(line) < 4 || line[3] != '-' {
			break
		}
	}
	return code, strings.Join(parts, " "), nil
}
