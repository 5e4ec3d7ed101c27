package stack

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/vk/paramgridgo/param"
)

// recorder builds resource specs that append enter/exit events to a shared
// trace, with per-resource failure and suppression knobs.
type recorder struct {
	trace []string
}

type resourceOpts struct {
	acquireErr error
	releaseErr error
	suppress   bool // what Release reports, not the spec opt-in
}

func (r *recorder) spec(name string, opts resourceOpts) param.ResourceSpec {
	return param.NewResource(func(ctx context.Context, args ...any) (param.Handle, error) {
		return param.FuncHandle{
			AcquireFn: func(ctx context.Context) (any, error) {
				if opts.acquireErr != nil {
					r.trace = append(r.trace, "enter("+name+") fail")
					return nil, opts.acquireErr
				}
				r.trace = append(r.trace, "enter("+name+")")
				return name, nil
			},
			ReleaseFn: func(ctx context.Context, cause error) (bool, error) {
				r.trace = append(r.trace, "exit("+name+")")
				return opts.suppress, opts.releaseErr
			},
		}, nil
	})
}

func TestRun_OrderAndTargets(t *testing.T) {
	rec := &recorder{}
	s := New([]param.ResourceSpec{
		rec.spec("outer", resourceOpts{}),
		rec.spec("inner", resourceOpts{}),
	})

	var seen []any
	err := s.Run(context.Background(), func(targets []any) error {
		rec.trace = append(rec.trace, "body")
		seen = targets
		return nil
	})
	require.NoError(t, err)

	want := []string{"enter(outer)", "enter(inner)", "body", "exit(inner)", "exit(outer)"}
	if diff := cmp.Diff(want, rec.trace); diff != "" {
		t.Errorf("trace (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{"outer", "inner"}, seen); diff != "" {
		t.Errorf("targets (-want +got):\n%s", diff)
	}
}

func TestRun_BodyErrorPropagates(t *testing.T) {
	rec := &recorder{}
	s := New([]param.ResourceSpec{rec.spec("r", resourceOpts{})})

	bodyErr := errors.New("body failed")
	err := s.Run(context.Background(), func(targets []any) error { return bodyErr })
	require.ErrorIs(t, err, bodyErr)

	want := []string{"enter(r)", "exit(r)"}
	if diff := cmp.Diff(want, rec.trace); diff != "" {
		t.Errorf("trace (-want +got):\n%s", diff)
	}
}

func TestRun_InnerAcquireFailureUnwindsOuter(t *testing.T) {
	rec := &recorder{}
	acquireErr := errors.New("inner acquire failed")
	s := New([]param.ResourceSpec{
		rec.spec("outer", resourceOpts{}),
		rec.spec("inner", resourceOpts{acquireErr: acquireErr}),
	})

	err := s.Run(context.Background(), func(targets []any) error {
		t.Fatal("body must not run after an acquire failure")
		return nil
	})
	require.ErrorIs(t, err, acquireErr)

	// The failed resource never entered, so only the outer one exits.
	want := []string{"enter(outer)", "enter(inner) fail", "exit(outer)"}
	if diff := cmp.Diff(want, rec.trace); diff != "" {
		t.Errorf("trace (-want +got):\n%s", diff)
	}
}

func TestRun_SuppressionRequiresOptIn(t *testing.T) {
	bodyErr := errors.New("body failed")

	t.Run("request without opt-in propagates", func(t *testing.T) {
		rec := &recorder{}
		s := New([]param.ResourceSpec{rec.spec("r", resourceOpts{suppress: true})})
		err := s.Run(context.Background(), func(targets []any) error { return bodyErr })
		require.ErrorIs(t, err, bodyErr)
	})

	t.Run("request with opt-in swallows", func(t *testing.T) {
		rec := &recorder{}
		s := New([]param.ResourceSpec{
			rec.spec("r", resourceOpts{suppress: true}).WithSuppress(true),
		})
		err := s.Run(context.Background(), func(targets []any) error { return bodyErr })
		require.NoError(t, err)
	})

	t.Run("opt-in without request propagates", func(t *testing.T) {
		rec := &recorder{}
		s := New([]param.ResourceSpec{
			rec.spec("r", resourceOpts{}).WithSuppress(true),
		})
		err := s.Run(context.Background(), func(targets []any) error { return bodyErr })
		require.ErrorIs(t, err, bodyErr)
	})
}

func TestRun_ReleaseErrorReplacesPending(t *testing.T) {
	rec := &recorder{}
	bodyErr := errors.New("body failed")
	releaseErr := errors.New("release failed")
	s := New([]param.ResourceSpec{rec.spec("r", resourceOpts{releaseErr: releaseErr})})

	err := s.Run(context.Background(), func(targets []any) error { return bodyErr })
	require.ErrorIs(t, err, releaseErr)
	require.NotErrorIs(t, err, bodyErr)
}

func TestRun_InnerReleaseErrorSeenByOuter(t *testing.T) {
	rec := &recorder{}
	releaseErr := errors.New("inner release failed")
	var outerSaw error
	outer := param.NewResource(func(ctx context.Context, args ...any) (param.Handle, error) {
		return param.FuncHandle{
			ReleaseFn: func(ctx context.Context, cause error) (bool, error) {
				outerSaw = cause
				return false, nil
			},
		}, nil
	})
	s := New([]param.ResourceSpec{
		outer,
		rec.spec("inner", resourceOpts{releaseErr: releaseErr}),
	})

	err := s.Run(context.Background(), func(targets []any) error { return nil })
	require.ErrorIs(t, err, releaseErr)
	require.ErrorIs(t, outerSaw, releaseErr)
}

func TestRun_SuppressedAcquireFailureSkipsBody(t *testing.T) {
	rec := &recorder{}
	acquireErr := errors.New("inner acquire failed")
	s := New([]param.ResourceSpec{
		rec.spec("outer", resourceOpts{suppress: true}).WithSuppress(true),
		rec.spec("inner", resourceOpts{acquireErr: acquireErr}),
	})

	ran := false
	err := s.Run(context.Background(), func(targets []any) error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	if ran {
		t.Error("body ran although the acquisition never completed")
	}
}

func TestStack_FactoryCalledFreshPerRun(t *testing.T) {
	factoryCalls := 0
	spec := param.NewResource(func(ctx context.Context, args ...any) (param.Handle, error) {
		factoryCalls++
		return param.FuncHandle{}, nil
	})
	s := New([]param.ResourceSpec{spec})

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Run(context.Background(), func(targets []any) error { return nil }))
	}
	if factoryCalls != 3 {
		t.Errorf("factory called %d times over 3 runs, want 3", factoryCalls)
	}
}

func TestStack_FactoryReceivesArgs(t *testing.T) {
	var got []any
	spec := param.NewResource(func(ctx context.Context, args ...any) (param.Handle, error) {
		got = append([]any(nil), args...)
		return param.FuncHandle{}, nil
	}, "dsn", 42)
	s := New([]param.ResourceSpec{spec})

	require.NoError(t, s.Run(context.Background(), func(targets []any) error { return nil }))
	if diff := cmp.Diff([]any{"dsn", 42}, got); diff != "" {
		t.Errorf("factory args (-want +got):\n%s", diff)
	}
}
