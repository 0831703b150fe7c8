// Package rpctest provides an in-process framed-rpc server for tests and
// local demos, in the spirit of net/http/httptest.
//
// The server speaks the same wire format as production servers: 4-byte
// length-prefixed UTF-8 JSON frames, one request/response pair at a time
// per connection. Its error messages reproduce the deployed servers'
// wording exactly, since clients classify failures by substring match.
package rpctest

import (
	"encoding/json"
	"net"
	"sync"

	"framed-rpc/message"
	"framed-rpc/protocol"
)

// Func is a server-side function. It receives the decoded JSON argument
// list and returns a JSON-representable result. Returning NoResult omits
// the result field from the response.
type Func func(args []any) (any, error)

type noResult struct{}

// NoResult is the sentinel a Func returns when the function has no return
// value. The response then carries no result field at all, as opposed to a
// JSON null.
var NoResult any = noResult{}

// Server is a framed-rpc server listening on a loopback address.
type Server struct {
	listener net.Listener

	mu        sync.RWMutex
	functions map[string]Func

	wg sync.WaitGroup // in-flight connections, for Close
}

// NewServer starts a server on an ephemeral loopback port with the
// standard function table registered. Close it when done.
func NewServer() (*Server, error) {
	return NewServerAddr("127.0.0.1:0")
}

// NewServerAddr starts a server on an explicit listen address.
func NewServerAddr(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	s := &Server{
		listener:  listener,
		functions: make(map[string]Func),
	}
	RegisterStandardFunctions(s)
	go s.acceptLoop()
	return s, nil
}

// Addr returns the address the server is listening on, suitable for
// client.NewAddr.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Register adds or replaces a function. Safe to call while serving.
func (s *Server) Register(name string, fn Func) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.functions[name] = fn
}

// Close stops accepting connections and waits for in-flight connections
// to finish.
func (s *Server) Close() {
	s.listener.Close()
	s.wg.Wait()
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			// listener.Close makes Accept fail; that is the shutdown path.
			return
		}
		s.wg.Add(1)
		go s.handleConn(conn)
	}
}

// handleConn serves one connection: read a frame, dispatch, write the
// response frame, repeat until the peer disconnects. The protocol is
// half-duplex, so a single sequential loop is the whole story.
func (s *Server) handleConn(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	for {
		body, err := protocol.ReadFrame(conn)
		if err != nil {
			return // peer closed or broke the connection
		}

		resp := s.dispatch(body)
		respBody, err := json.Marshal(resp)
		if err != nil {
			return
		}
		if err := protocol.WriteFrame(conn, respBody); err != nil {
			return
		}
	}
}

// dispatch decodes one request body and runs the named function, mapping
// every failure to the wire error message the deployed servers produce.
func (s *Server) dispatch(body []byte) *message.Response {
	var raw struct {
		Function *string `json:"function"`
		Args     *[]any  `json:"args"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return errorResponse("Invalid JSON: " + err.Error())
	}
	if raw.Function == nil || raw.Args == nil {
		return errorResponse("Missing 'function' or 'args' field")
	}

	s.mu.RLock()
	fn, ok := s.functions[*raw.Function]
	s.mu.RUnlock()
	if !ok {
		return errorResponse("Function not found: " + *raw.Function)
	}

	result, err := fn(*raw.Args)
	if err != nil {
		return errorResponse("Execution error: " + err.Error())
	}

	resp := &message.Response{Status: message.StatusSuccess}
	if result == NoResult {
		return resp // no result field on the wire
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return errorResponse("Execution error: " + err.Error())
	}
	resp.Result = payload
	return resp
}

func errorResponse(msg string) *message.Response {
	return &message.Response{Status: message.StatusError, Message: msg}
}
