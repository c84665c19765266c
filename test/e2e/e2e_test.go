package e2e

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/smallyu/go-ecdh-kex/internal/crypto/curves"
	"github.com/smallyu/go-ecdh-kex/internal/protocol/keyagree"
	"github.com/smallyu/go-ecdh-kex/pkg/ecdh"
)

// TestFullHandshake drives the complete exchange the way a TLS-style
// handshake would: the server emits its key-exchange parameters, the
// client decodes them, answers with its own public point, and both
// sides derive the shared secret.
func TestFullHandshake(t *testing.T) {
	formats := map[string]ecdh.PointFormat{
		"uncompressed": ecdh.Uncompressed,
		"compressed":   ecdh.Compressed,
		"hybrid":       ecdh.Hybrid,
	}

	for _, g := range curves.All() {
		for name, format := range formats {
			t.Run(g.Name()+"/"+name, func(t *testing.T) {
				server := keyagree.New()
				client := keyagree.New()
				defer server.Free()
				defer client.Free()

				if err := server.UseGroup(g); err != nil {
					t.Fatal(err)
				}
				server.SetPointFormat(format)

				var params [keyagree.MaxServerParamsBytes]byte
				n, err := server.MakeServerParams(params[:], rand.Reader)
				if err != nil {
					t.Fatalf("server params: %v", err)
				}

				if _, err := client.ReadServerParams(params[:n]); err != nil {
					t.Fatalf("client read params: %v", err)
				}
				client.SetPointFormat(format)

				var pub [keyagree.MaxPublicBytes]byte
				m, err := client.MakePublic(pub[:], rand.Reader)
				if err != nil {
					t.Fatalf("client public: %v", err)
				}
				if err := client.ComputeShared(nil); err != nil {
					t.Fatalf("client derive: %v", err)
				}

				if _, err := server.ReadPublic(pub[:m]); err != nil {
					t.Fatalf("server read public: %v", err)
				}
				if err := server.ComputeShared(nil); err != nil {
					t.Fatalf("server derive: %v", err)
				}

				zs, err := server.SharedSecretBytes()
				if err != nil {
					t.Fatal(err)
				}
				zc, err := client.SharedSecretBytes()
				if err != nil {
					t.Fatal(err)
				}
				if !bytes.Equal(zs, zc) {
					t.Fatalf("parties disagree: server %x, client %x", zs, zc)
				}
				if len(zs) != g.FieldBytes() {
					t.Fatalf("secret is %d bytes, want %d", len(zs), g.FieldBytes())
				}
			})
		}
	}
}

// TestHandshakeSecretsDifferAcrossSessions checks that two runs never
// reuse key material.
func TestHandshakeSecretsDifferAcrossSessions(t *testing.T) {
	run := func() []byte {
		server := keyagree.New()
		client := keyagree.New()
		defer server.Free()
		defer client.Free()

		if err := server.UseGroup(curves.Curve25519()); err != nil {
			t.Fatal(err)
		}
		var params [keyagree.MaxServerParamsBytes]byte
		n, err := server.MakeServerParams(params[:], rand.Reader)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := client.ReadServerParams(params[:n]); err != nil {
			t.Fatal(err)
		}
		var pub [keyagree.MaxPublicBytes]byte
		m, err := client.MakePublic(pub[:], rand.Reader)
		if err != nil {
			t.Fatal(err)
		}
		if err := client.ComputeShared(nil); err != nil {
			t.Fatal(err)
		}
		if _, err := server.ReadPublic(pub[:m]); err != nil {
			t.Fatal(err)
		}
		if err := server.ComputeShared(nil); err != nil {
			t.Fatal(err)
		}
		z, err := server.SharedSecretBytes()
		if err != nil {
			t.Fatal(err)
		}
		return z
	}

	if bytes.Equal(run(), run()) {
		t.Fatal("two independent sessions derived the same secret")
	}
}

func TestSelfTestEndToEnd(t *testing.T) {
	if err := keyagree.SelfTest(testing.Verbose()); err != nil {
		t.Fatalf("self-test: %v", err)
	}
}
