package simulator

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"elegante_hospedagem/internal/domain"
	"elegante_hospedagem/internal/storage/memory"
)

func newTestBackend(opts Options) (*Backend, *memory.Catalog) {
	catalog := memory.New(memory.SeedRooms())
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(1))
	}
	return New(catalog, opts), catalog
}

func TestCheckAvailability_DropsScriptedRooms(t *testing.T) {
	b, catalog := newTestBackend(Options{DropRooms: []string{"1"}})
	ctx := context.Background()

	out, err := b.CheckAvailability(ctx, []string{"1", "2"})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if out["1"] || !out["2"] {
		t.Fatalf("verdict = %v, want 1 dropped and 2 up", out)
	}

	// the drop is written through to the catalog, not just the answer
	r, _ := catalog.GetRoom(ctx, "1")
	if r.Available {
		t.Fatalf("catalog still lists room 1 as available")
	}
}

func TestCheckAvailability_UnknownRoomIsUnavailable(t *testing.T) {
	b, _ := newTestBackend(Options{})
	out, err := b.CheckAvailability(context.Background(), []string{"99"})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if out["99"] {
		t.Fatalf("unknown room reported available")
	}
}

func TestCheckAvailability_HonorsContext(t *testing.T) {
	b, _ := newTestBackend(Options{AvailabilityDelay: time.Minute})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := b.CheckAvailability(ctx, []string{"1"}); err == nil {
		t.Fatalf("expected a context error")
	}
}

func TestResolvePayment_PixAlwaysApproved(t *testing.T) {
	b, _ := newTestBackend(Options{CardSuccessRate: 0.0001})
	for i := 0; i < 20; i++ {
		approved, ref, err := b.ResolvePayment(context.Background(), domain.MethodPix)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if !approved {
			t.Fatalf("pix declined on attempt %d", i)
		}
		if !strings.HasPrefix(ref, "EH") || len(ref) != 8 {
			t.Fatalf("ref = %q, want EH + six digits", ref)
		}
	}
}

func TestResolvePayment_CardFollowsSuccessRate(t *testing.T) {
	ctx := context.Background()

	b, _ := newTestBackend(Options{CardSuccessRate: 1, RPS: 1000})
	for i := 0; i < 10; i++ {
		if approved, _, _ := b.ResolvePayment(ctx, domain.MethodCard); !approved {
			t.Fatalf("rate 1 declined a card")
		}
	}

	b, _ = newTestBackend(Options{CardSuccessRate: -1, RPS: 1000})
	if approved, _, _ := b.ResolvePayment(ctx, domain.MethodCard); approved {
		t.Fatalf("negative rate approved a card")
	}
}

func TestValidateDiscount_AnyCode(t *testing.T) {
	b, _ := newTestBackend(Options{DiscountAmount: 150})
	for _, code := range []string{"BEMVINDO", "x", ""} {
		amount, err := b.ValidateDiscount(context.Background(), code)
		if err != nil {
			t.Fatalf("code %q: %v", code, err)
		}
		if amount != 150 {
			t.Fatalf("code %q: amount = %.2f, want 150", code, amount)
		}
	}
}

func TestLogin_GoogleGetsAdmin(t *testing.T) {
	b, _ := newTestBackend(Options{})
	ctx := context.Background()

	admin, err := b.Login(ctx, "Google")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !admin {
		t.Fatalf("google login should grant admin")
	}
	if admin, _ = b.Login(ctx, "facebook"); admin {
		t.Fatalf("facebook login should not grant admin")
	}
}
