//go:build js && wasm

package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"syscall/js"

	"github.com/smallyu/go-ecdh-kex/internal/crypto/curves"
	"github.com/smallyu/go-ecdh-kex/internal/protocol/keyagree"
	"github.com/smallyu/go-ecdh-kex/pkg/ecdh"
)

// Active key-agreement sessions, keyed by handle.
var (
	sessions   = make(map[string]*keyagree.Context)
	nextHandle int
)

var curveNames = map[string]ecdh.CurveID{
	"secp256k1": ecdh.Secp256k1,
	"secp256r1": ecdh.Secp256r1,
	"secp384r1": ecdh.Secp384r1,
	"secp521r1": ecdh.Secp521r1,
	"x25519":    ecdh.X25519,
	"x448":      ecdh.X448,
}

func main() {
	c := make(chan struct{})

	fmt.Println("go-ecdh-kex WASM initialized")

	js.Global().Set("GoECDH", map[string]interface{}{
		"NewSession":       js.FuncOf(NewSession),
		"ServerParams":     js.FuncOf(ServerParams),
		"ReadServerParams": js.FuncOf(ReadServerParams),
		"MakePublic":       js.FuncOf(MakePublic),
		"ReadPublic":       js.FuncOf(ReadPublic),
		"Shared":           js.FuncOf(Shared),
		"Close":            js.FuncOf(Close),
	})

	<-c
}

// NewSession creates a key-agreement context.
// Arguments: 0: curve name ("" for a client that learns the curve from
// the server's parameters). Returns a session handle or an error string.
func NewSession(this js.Value, args []js.Value) interface{} {
	if len(args) != 1 {
		return "error: expected 1 argument (curveName)"
	}
	name := args[0].String()

	ctx := keyagree.New()
	if name != "" {
		id, ok := curveNames[name]
		if !ok {
			return fmt.Sprintf("error: unknown curve %q", name)
		}
		g, err := curves.ByID(id)
		if err != nil {
			return fmt.Sprintf("error: %v", err)
		}
		if err := ctx.UseGroup(g); err != nil {
			return fmt.Sprintf("error: %v", err)
		}
	}

	nextHandle++
	handle := fmt.Sprintf("ecdh-%d", nextHandle)
	sessions[handle] = ctx
	return handle
}

// ServerParams generates a key pair and returns the hex-encoded
// key-exchange parameters. Arguments: 0: session handle.
func ServerParams(this js.Value, args []js.Value) interface{} {
	ctx, errStr := session(args, 1)
	if errStr != "" {
		return errStr
	}
	var buf [keyagree.MaxServerParamsBytes]byte
	n, err := ctx.MakeServerParams(buf[:], rand.Reader)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return hex.EncodeToString(buf[:n])
}

// ReadServerParams feeds a server's hex-encoded parameters to a client
// session. Arguments: 0: session handle, 1: hex params.
func ReadServerParams(this js.Value, args []js.Value) interface{} {
	ctx, errStr := session(args, 2)
	if errStr != "" {
		return errStr
	}
	data, err := hex.DecodeString(args[1].String())
	if err != nil {
		return fmt.Sprintf("error: invalid hex: %v", err)
	}
	if _, err := ctx.ReadServerParams(data); err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return nil
}

// MakePublic generates the client key pair and returns the hex-encoded
// length-prefixed public point. Arguments: 0: session handle.
func MakePublic(this js.Value, args []js.Value) interface{} {
	ctx, errStr := session(args, 1)
	if errStr != "" {
		return errStr
	}
	var buf [keyagree.MaxPublicBytes]byte
	n, err := ctx.MakePublic(buf[:], rand.Reader)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return hex.EncodeToString(buf[:n])
}

// ReadPublic feeds the peer's hex-encoded public point to a session.
// Arguments: 0: session handle, 1: hex point.
func ReadPublic(this js.Value, args []js.Value) interface{} {
	ctx, errStr := session(args, 2)
	if errStr != "" {
		return errStr
	}
	data, err := hex.DecodeString(args[1].String())
	if err != nil {
		return fmt.Sprintf("error: invalid hex: %v", err)
	}
	if _, err := ctx.ReadPublic(data); err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return nil
}

// Shared derives and returns the hex-encoded shared secret.
// Arguments: 0: session handle.
func Shared(this js.Value, args []js.Value) interface{} {
	ctx, errStr := session(args, 1)
	if errStr != "" {
		return errStr
	}
	if err := ctx.ComputeShared(nil); err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	z, err := ctx.SharedSecretBytes()
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return hex.EncodeToString(z)
}

// Close wipes a session's secrets and discards it.
// Arguments: 0: session handle.
func Close(this js.Value, args []js.Value) interface{} {
	ctx, errStr := session(args, 1)
	if errStr != "" {
		return errStr
	}
	ctx.Free()
	delete(sessions, args[0].String())
	return nil
}

func session(args []js.Value, want int) (*keyagree.Context, string) {
	if len(args) != want {
		return nil, fmt.Sprintf("error: expected %d argument(s)", want)
	}
	ctx, ok := sessions[args[0].String()]
	if !ok {
		return nil, "error: session not found"
	}
	return ctx, ""
}
