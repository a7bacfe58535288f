package mcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ParseJSONRPCRequest decodes one JSON-RPC 2.0 request from r. Legacy method
// names are rewritten to their current spelling.
func ParseJSONRPCRequest(r io.Reader) (*JSONRPCRequest, error) {
	var req JSONRPCRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return nil, &RPCError{
			Code:    ParseError,
			Message: "Invalid JSON",
			Data:    err.Error(),
		}
	}

	if req.JSONRPC != "2.0" {
		return nil, &RPCError{
			Code:    InvalidRequest,
			Message: "Invalid JSON-RPC version (must be '2.0')",
			Data:    req.JSONRPC,
		}
	}

	if req.Method == "" {
		return nil, &RPCError{
			Code:    InvalidRequest,
			Message: "Missing 'method' field",
		}
	}

	if current, ok := legacyMethods[req.Method]; ok {
		req.Method = current
	}

	return &req, nil
}

// NewJSONRPCError creates a JSON-RPC error response.
func NewJSONRPCError(id any, rpcErr *RPCError) *JSONRPCResponse {
	return &JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   rpcErr,
	}
}

// FormatMCPError converts err into an RPCError, keeping one that is
// already an RPCError.
func FormatMCPError(err error) *RPCError {
	var rpcErr *RPCError
	if errors.As(err, &rpcErr) {
		return rpcErr
	}
	return &RPCError{
		Code:    InternalError,
		Message: fmt.Sprintf("Internal error: %s", err.Error()),
	}
}
