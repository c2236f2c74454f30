// channel.go implements the TCP runtime behind Minipar's s_channel/c_channel
// declarations: a listening socket exposing accept(), and a connection
// exposing send()/recv()/close(), framed as newline-terminated UTF-8 text.
package minipar

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"sync"
)

// SChannel is a bound, listening server socket.
type SChannel struct {
	mu     sync.Mutex
	ln     net.Listener
	closed bool
}

// CChannel is one connected endpoint — either dialed directly by a
// c_channel declaration, or handed back by an SChannel's accept().
type CChannel struct {
	mu     sync.Mutex
	conn   net.Conn
	r      *bufio.Reader
	closed bool
}

func SChannelValue(c *SChannel) Value { return Value{Tag: VSChannel, Data: c} }
func CChannelValue(c *CChannel) Value { return Value{Tag: VCChannel, Data: c} }

func (s *SChannel) accept() (*CChannel, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, fmt.Errorf("channel closed")
	}
	ln := s.ln
	s.mu.Unlock()

	conn, err := ln.Accept()
	if err != nil {
		return nil, err
	}
	return &CChannel{conn: conn, r: bufio.NewReader(conn)}, nil
}

func (s *SChannel) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.ln.Close()
}

func (c *CChannel) send(msg string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return fmt.Errorf("channel closed")
	}
	_, err := c.conn.Write([]byte(msg + "\n"))
	return err
}

func (c *CChannel) recv() (string, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return "", fmt.Errorf("channel closed")
	}
	r := c.r
	c.mu.Unlock()

	line, err := r.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return line, nil
		}
		return "", err
	}
	return line[:len(line)-1], nil
}

func (c *CChannel) close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.conn.Close()
}

// execChannelDecl binds a listening socket (s_channel) or an outbound
// connection (c_channel) to Name in env.
func (in *Interp) execChannelDecl(n *ChannelDecl, env *Env) {
	host := in.evalExpr(n.Host, env).String_()
	port := in.evalExpr(n.Port, env).Number()
	addr := fmt.Sprintf("%s:%d", host, int64(port))

	switch n.Kind {
	case ChannelServer:
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			failAt(n.Tok, "s_channel %s: %v", n.Name, err)
		}
		env.Define(n.Name, TypeSChan, SChannelValue(&SChannel{ln: ln}))
	case ChannelClient:
		conn, err := net.Dial("tcp", addr)
		if err != nil {
			failAt(n.Tok, "c_channel %s: %v", n.Name, err)
		}
		env.Define(n.Name, TypeCChan, CChannelValue(&CChannel{conn: conn, r: bufio.NewReader(conn)}))
	}
}

// evalChannelOp dispatches accept/send/recv/close. accept takes an s_channel
// and send/recv a c_channel; close switches on whichever channel kind its
// argument holds.
func (in *Interp) evalChannelOp(n *Call, env *Env) Value {
	switch n.Oper {
	case "accept":
		sv := in.evalExpr(n.Args[0], env)
		conn, err := sv.Data.(*SChannel).accept()
		if err != nil {
			failAt(n.Tok, "accept: %v", err)
		}
		return CChannelValue(conn)

	case "recv":
		cv := in.evalExpr(n.Args[0], env)
		s, err := cv.Data.(*CChannel).recv()
		if err != nil {
			failAt(n.Tok, "recv: %v", err)
		}
		return StringValue(s)

	case "send":
		cv := in.evalExpr(n.Args[0], env)
		msg := in.evalExpr(n.Args[1], env).String_()
		if err := cv.Data.(*CChannel).send(msg); err != nil {
			failAt(n.Tok, "send: %v", err)
		}
		return VoidValue()

	case "close":
		v := in.evalExpr(n.Args[0], env)
		var err error
		switch v.Tag {
		case VCChannel:
			err = v.Data.(*CChannel).close()
		case VSChannel:
			err = v.Data.(*SChannel).close()
		}
		if err != nil {
			failAt(n.Tok, "close: %v", err)
		}
		return VoidValue()

	default:
		fail(fmt.Sprintf("unreachable channel operation %q", n.Oper))
		return Value{}
	}
}
