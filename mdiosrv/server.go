// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package mdiosrv exposes the slow MDIO read/write path over a plain TCP
// line protocol, so an external debugger can poke PHY registers without
// going through the JTAG command queue.
package mdiosrv

import (
	"bufio"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"

	"github.com/jtagphy/baset1/mdio"
)

// DisabledPort is the sentinel port value that turns the server into a
// no-op: Serve returns immediately without listening.
const DisabledPort = "disabled"

// DefaultPort is the port the server listens on unless overridden.
const DefaultPort = "7777"

// Server is a single-listener TCP front end for one *mdio.Context. Every
// accepted connection is handled on its own goroutine; the underlying
// Context is not safe for concurrent slow-path use, so a mutex
// serializes requests across connections.
type Server struct {
	ctx  *mdio.Context
	addr string

	mu sync.Mutex

	ln net.Listener
}

// New binds a Server to ctx. addr is a host:port or :port pair, or just
// a port number, matching net.Listen's "tcp" network convention; pass
// DisabledPort to build a Server whose Serve is a no-op.
func New(ctx *mdio.Context, addr string) *Server {
	return &Server{ctx: ctx, addr: addr}
}

// Serve accepts connections until the listener is closed or Serve
// itself fails to bind. It blocks; run it in its own goroutine.
func (s *Server) Serve() error {
	if s.addr == DisabledPort {
		logf("mdiosrv: disabled")
		return nil
	}
	addr := s.addr
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = ":" + addr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("mdiosrv: listen: %w", err)
	}
	s.ln = ln
	logf("mdiosrv: listening on %s", ln.Addr())
	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		go s.handle(conn)
	}
}

// Close stops accepting new connections. In-flight connections finish
// on their own.
func (s *Server) Close() error {
	if s.ln == nil {
		return nil
	}
	return s.ln.Close()
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()
	logf("mdiosrv: connection from %s", conn.RemoteAddr())
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		reply, err := s.dispatch(scanner.Text())
		if err != nil {
			logf("mdiosrv: %s: %v", conn.RemoteAddr(), err)
			return
		}
		if _, err := fmt.Fprintln(conn, reply); err != nil {
			logf("mdiosrv: write to %s: %v", conn.RemoteAddr(), err)
			return
		}
	}
	logf("mdiosrv: connection from %s closed", conn.RemoteAddr())
}

// dispatch parses one line, in the "R:phy,dev,reg" or "W:phy,dev,reg,val"
// hex-field format, performs the corresponding slow MDIO operation, and
// returns the reply line to send back.
func (s *Server) dispatch(line string) (string, error) {
	mode, fields, err := parseLine(line)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch mode {
	case 'W':
		if err := s.ctx.Write(uint8(fields[0]), uint8(fields[1]), fields[2], fields[3]); err != nil {
			return "", fmt.Errorf("write: %w", err)
		}
		return "W Done", nil
	case 'R':
		val, err := s.ctx.Read(uint8(fields[0]), uint8(fields[1]), fields[2])
		if err != nil {
			return "", fmt.Errorf("read: %w", err)
		}
		return fmt.Sprintf("R Done: 0x%04x", val), nil
	default:
		return "", fmt.Errorf("unknown mode %q", mode)
	}
}

// parseLine decodes "R:phy,dev,reg" (3 hex fields) or "W:phy,dev,reg,val"
// (4 hex fields) into phy/dev/reg/val, returned widened to uint16 so
// the caller can narrow PHY and dev itself.
func parseLine(line string) (byte, [4]uint16, error) {
	var fields [4]uint16
	if len(line) == 0 {
		return 0, fields, fmt.Errorf("empty line")
	}
	mode := line[0] &^ 0x20 // uppercase
	var want int
	switch mode {
	case 'R':
		want = 3
	case 'W':
		want = 4
	default:
		return 0, fields, fmt.Errorf("unrecognized command %q", line[0])
	}
	rest := line
	if idx := strings.IndexByte(line, ':'); idx >= 0 {
		rest = line[idx+1:]
	}
	parts := strings.Split(rest, ",")
	if len(parts) < want {
		return 0, fields, fmt.Errorf("expected %d fields, got %d", want, len(parts))
	}
	for i := 0; i < want; i++ {
		v, err := strconv.ParseUint(strings.TrimSpace(parts[i]), 16, 16)
		if err != nil {
			return 0, fields, fmt.Errorf("field %d: %w", i, err)
		}
		fields[i] = uint16(v)
	}
	return mode, fields, nil
}
