package dispatcher_test

import (
	"testing"

	"github.com/dshills/structlab/internal/command"
	"github.com/dshills/structlab/internal/dispatcher"
	"github.com/dshills/structlab/internal/dispatcher/handler"
	"github.com/dshills/structlab/internal/dispatcher/session"
)

type stubNamespace struct {
	namespace string
	keys      map[string]bool
}

func (s *stubNamespace) Namespace() string { return s.namespace }

func (s *stubNamespace) CanHandle(key string) bool { return s.keys[key] }

func (s *stubNamespace) HandleCommand(cmd command.Command, sess *session.Session) handler.Result {
	return handler.SuccessWithMessage("handled " + cmd.Key())
}

func TestRouterRoute(t *testing.T) {
	r := dispatcher.NewRouter()
	r.RegisterNamespace("linear", &stubNamespace{
		namespace: "linear",
		keys:      map[string]bool{"linear.push": true},
	})

	h := r.Route("linear.push")
	if h == nil {
		t.Fatal("expected a handler")
	}
	result := h.Handle(command.Command{Family: command.FamilyLinear, Op: command.OpPush}, session.New())
	if result.Message != "handled linear.push" {
		t.Errorf("expected the namespace handler to run, got %q", result.Message)
	}
}

func TestRouterUnclaimedKey(t *testing.T) {
	r := dispatcher.NewRouter()
	r.RegisterNamespace("linear", &stubNamespace{
		namespace: "linear",
		keys:      map[string]bool{"linear.push": true},
	})

	if h := r.Route("linear.traverse"); h != nil {
		t.Error("expected nil when the namespace rejects the key")
	}
	if h := r.Route("tree.insert"); h != nil {
		t.Error("expected nil for an unregistered namespace")
	}
}

func TestRouterFallback(t *testing.T) {
	r := dispatcher.NewRouter()
	r.SetFallback(stubHandler("fallback"))

	h := r.Route("tree.insert")
	if h == nil {
		t.Fatal("expected the fallback")
	}
	result := h.Handle(command.Command{}, session.New())
	if result.Message != "fallback" {
		t.Errorf("expected fallback, got %q", result.Message)
	}
}

func TestRouterNamespaceQueries(t *testing.T) {
	r := dispatcher.NewRouter()
	r.RegisterNamespace("tree", &stubNamespace{namespace: "tree"})

	if !r.HasNamespace("tree") {
		t.Error("expected the tree namespace to be registered")
	}
	if r.HasNamespace("linear") {
		t.Error("expected linear to be absent")
	}
	if got := r.Namespaces(); len(got) != 1 || got[0] != "tree" {
		t.Errorf("expected [tree], got %v", got)
	}

	r.UnregisterNamespace("tree")
	if r.HasNamespace("tree") {
		t.Error("expected the tree namespace to be gone")
	}
}

func TestRouterCanRoute(t *testing.T) {
	r := dispatcher.NewRouter()
	r.RegisterNamespace("linear", &stubNamespace{
		namespace: "linear",
		keys:      map[string]bool{"linear.push": true},
	})

	if !r.CanRoute("linear.push") {
		t.Error("expected linear.push to be routable")
	}
	if r.CanRoute("linear.traverse") {
		t.Error("expected linear.traverse to be unroutable")
	}
	if r.CanRoute("keywithoutdot") {
		t.Error("expected a key without a namespace to be unroutable")
	}
}
