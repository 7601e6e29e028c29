package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	arg   string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Signup(ctx context.Context) error {
	f.calls = append(f.calls, "signup")
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) Whoami(ctx context.Context) error {
	f.calls = append(f.calls, "whoami")
	return nil
}
func (f *fakeExec) ShowFeed(ctx context.Context) error {
	f.calls = append(f.calls, "feed")
	return nil
}
func (f *fakeExec) NextPage(ctx context.Context) error {
	f.calls = append(f.calls, "next")
	return nil
}
func (f *fakeExec) PrevPage(ctx context.Context) error {
	f.calls = append(f.calls, "prev")
	return nil
}
func (f *fakeExec) Like(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "like")
	f.arg = args[0]
	return nil
}
func (f *fakeExec) ListCreators(ctx context.Context) error {
	f.calls = append(f.calls, "creators")
	return nil
}
func (f *fakeExec) FindCreators(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "find")
	f.arg = strings.Join(args, " ")
	return nil
}
func (f *fakeExec) OpenCreator(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "creator")
	f.arg = args[0]
	return nil
}
func (f *fakeExec) ToggleSubscription(ctx context.Context) error {
	f.calls = append(f.calls, "sub")
	return nil
}
func (f *fakeExec) OpenPost(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "post")
	f.arg = args[0]
	return nil
}
func (f *fakeExec) ShowSubscriptions(ctx context.Context) error {
	f.calls = append(f.calls, "subs")
	return nil
}
func (f *fakeExec) EditProfile(ctx context.Context) error {
	f.calls = append(f.calls, "profile")
	return nil
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"feed",
		"next",
		"like p7",
		"creator c2",
		"sub",
		"subs",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"login", "feed", "next", "like", "creator", "sub", "subs"}
	if len(exec.calls) < len(wantOrder) {
		t.Fatalf("few calls: %+v", exec.calls)
	}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}
}

func TestRunREPL_ArgsReachHandlers(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("find luna arts\nexit\n")
	exec := &fakeExec{}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	if exec.arg != "luna arts" {
		t.Fatalf("expected joined query, got %q", exec.arg)
	}
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("like\nfind\ncreator\npost\nquit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

func TestRunREPL_EOFTerminates(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	sc := bufio.NewScanner(strings.NewReader(""))
	runREPL(context.Background(), &fakeExec{}, func() string { return "" }, sc)
}
