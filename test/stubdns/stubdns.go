// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

// Package stubdns implements an in-process DNS server answering from a fixed
// set of records, for testing DNS clients without touching the network.
package stubdns

import (
	"net"
	"strings"
	"sync"
	"time"

	"github.com/miekg/dns"
)

// Server is a stub DNS server listening on a UDP port of the loopback
// interface. Names present in the record set are answered with their records
// of the queried type (or an empty NOERROR response), all other names get
// NXDOMAIN. A Silent server swallows all queries so that clients time out.
type Server struct {
	srv     *dns.Server
	records map[string][]dns.RR
	silent  bool
	delay   time.Duration

	mu      sync.Mutex
	queries []dns.Question
}

// Option configures a stub Server.
type Option func(*Server)

// Silent makes the server never answer.
func Silent() Option {
	return func(s *Server) { s.silent = true }
}

// WithDelay delays each answer by the specified duration.
func WithDelay(d time.Duration) Option {
	return func(s *Server) { s.delay = d }
}

// Start a new stub DNS server serving the specified records in zone file
// notation, such as "www.example.com. 60 IN A 192.0.2.1". It panics when the
// records cannot be parsed or the server fails to start, as this is a test
// harness.
func Start(records []string, options ...Option) *Server {
	s := &Server{
		records: map[string][]dns.RR{},
	}
	for _, opt := range options {
		opt(s)
	}
	for _, record := range records {
		rr, err := dns.NewRR(record)
		if err != nil {
			panic(err)
		}
		name := strings.ToLower(rr.Header().Name)
		s.records[name] = append(s.records[name], rr)
	}
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		panic(err)
	}
	started := make(chan struct{})
	s.srv = &dns.Server{
		PacketConn:        pc,
		Handler:           dns.HandlerFunc(s.serve),
		NotifyStartedFunc: func() { close(started) },
	}
	go func() { _ = s.srv.ActivateAndServe() }()
	<-started
	return s
}

// Addr returns the "ip:port" address the server listens on.
func (s *Server) Addr() string {
	return s.srv.PacketConn.LocalAddr().String()
}

// Queries returns the questions received so far.
func (s *Server) Queries() []dns.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]dns.Question(nil), s.queries...)
}

// Stop the server.
func (s *Server) Stop() {
	_ = s.srv.Shutdown()
}

func (s *Server) serve(w dns.ResponseWriter, req *dns.Msg) {
	if len(req.Question) == 0 {
		return
	}
	q := req.Question[0]
	s.mu.Lock()
	s.queries = append(s.queries, q)
	s.mu.Unlock()
	if s.silent {
		return
	}
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	reply := &dns.Msg{}
	reply.SetReply(req)
	reply.Authoritative = true
	rrs, ok := s.records[strings.ToLower(q.Name)]
	if !ok {
		reply.SetRcode(req, dns.RcodeNameError)
		_ = w.WriteMsg(reply)
		return
	}
	for _, rr := range rrs {
		if rr.Header().Rrtype == q.Qtype {
			reply.Answer = append(reply.Answer, dns.Copy(rr))
		}
	}
	_ = w.WriteMsg(reply)
}
