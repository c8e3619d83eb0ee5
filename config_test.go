package sconf

import (
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProcess struct {
	name string
	pid  int
}

func (p *fakeProcess) Name() string { return p.name }
func (p *fakeProcess) PID() int     { return p.pid }

type fakeRequest struct {
	method, path string
}

func (r *fakeRequest) Method() string { return r.method }
func (r *fakeRequest) Path() string   { return r.path }

type fakeWorkerClass struct {
	setupCalls int
}

func (w *fakeWorkerClass) SetupClass() { w.setupCalls++ }

func newTestConfig(t *testing.T, opts Options) *Config {
	t.Helper()
	cfg, err := New(Builtin(), opts)
	require.NoError(t, err)
	return cfg
}

func TestConfigDefaults(t *testing.T) {
	cfg := newTestConfig(t, Options{})

	workers, err := cfg.Workers()
	require.NoError(t, err)
	assert.Equal(t, 1, workers)

	timeout, err := cfg.Int("timeout")
	require.NoError(t, err)
	assert.Equal(t, 30, timeout)

	debug, err := cfg.Bool("debug")
	require.NoError(t, err)
	assert.False(t, debug)

	level, err := cfg.String("loglevel")
	require.NoError(t, err)
	assert.Equal(t, "info", level)
}

func TestConfigSetRoundTrip(t *testing.T) {
	cfg := newTestConfig(t, Options{})

	require.NoError(t, cfg.Set("workers", "4"))
	v, err := cfg.Get("workers")
	require.NoError(t, err)
	assert.Equal(t, 4, v)

	// A second identical set is a no-op success.
	require.NoError(t, cfg.Set("workers", "4"))
	v, err = cfg.Get("workers")
	require.NoError(t, err)
	assert.Equal(t, 4, v)
}

func TestConfigTwoTierRead(t *testing.T) {
	cfg := newTestConfig(t, Options{Exclude: []string{"debug"}})

	t.Run("FilteredReadsAsAbsent", func(t *testing.T) {
		v, err := cfg.Get("debug")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("UnknownReadFails", func(t *testing.T) {
		_, err := cfg.Get("no_such_setting")
		require.ErrorIs(t, err, ErrUnknownSetting)
	})

	t.Run("FilteredWriteFails", func(t *testing.T) {
		err := cfg.Set("debug", true)
		require.ErrorIs(t, err, ErrUnknownSetting)
	})

	t.Run("UnknownWriteFails", func(t *testing.T) {
		err := cfg.Set("no_such_setting", 1)
		require.ErrorIs(t, err, ErrUnknownSetting)
	})
}

func TestConfigInstancesAreIndependent(t *testing.T) {
	reg := Builtin()

	first, err := New(reg, Options{})
	require.NoError(t, err)
	second, err := New(reg, Options{})
	require.NoError(t, err)

	require.NoError(t, first.Set("timeout", 10))
	require.NoError(t, second.Set("timeout", 60))

	v1, err := first.Get("timeout")
	require.NoError(t, err)
	v2, err := second.Get("timeout")
	require.NoError(t, err)
	assert.Equal(t, 10, v1)
	assert.Equal(t, 60, v2)

	// The registry template keeps its declared default.
	third, err := New(reg, Options{})
	require.NoError(t, err)
	v3, err := third.Get("timeout")
	require.NoError(t, err)
	assert.Equal(t, 30, v3)
}

func TestConfigValidationFailure(t *testing.T) {
	cfg := newTestConfig(t, Options{})
	require.NoError(t, cfg.Set("workers", 2))

	err := cfg.Set("workers", "-1")
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "workers", verr.Name)

	v, err := cfg.Get("workers")
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestConfigProcName(t *testing.T) {
	t.Run("DefaultProcName", func(t *testing.T) {
		cfg := newTestConfig(t, Options{})
		assert.Equal(t, DefaultServerName, cfg.ProcName())
	})

	t.Run("ExplicitWins", func(t *testing.T) {
		cfg := newTestConfig(t, Options{})
		require.NoError(t, cfg.Set("proc_name", "frontend"))
		assert.Equal(t, "frontend", cfg.ProcName())
	})

	t.Run("RuntimeFallback", func(t *testing.T) {
		cfg := newTestConfig(t, Options{
			Exclude: []string{"proc_name", "default_proc_name"},
			Runtime: &Runtime{ServerName: "hosting-server"},
		})
		assert.Equal(t, "hosting-server", cfg.ProcName())
	})
}

func TestConfigIdentityLookup(t *testing.T) {
	rt := &Runtime{
		LookupUID: func(name string) (int, error) {
			if name == "www" {
				return 33, nil
			}
			return 0, fmt.Errorf("no such user: %s", name)
		},
		LookupGID: func(name string) (int, error) { return 101, nil },
	}

	t.Run("UnsetIsAbsent", func(t *testing.T) {
		cfg := newTestConfig(t, Options{Runtime: rt})
		uid, ok, err := cfg.UID()
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Zero(t, uid)
	})

	t.Run("Resolved", func(t *testing.T) {
		cfg := newTestConfig(t, Options{Runtime: rt})
		require.NoError(t, cfg.Set("user", "www"))
		require.NoError(t, cfg.Set("group", "staff"))

		uid, ok, err := cfg.UID()
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 33, uid)

		gid, ok, err := cfg.GID()
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 101, gid)
	})

	t.Run("LookupFailure", func(t *testing.T) {
		cfg := newTestConfig(t, Options{Runtime: rt})
		require.NoError(t, cfg.Set("user", "ghost"))
		_, _, err := cfg.UID()
		assert.Error(t, err)
	})
}

func TestConfigAddr(t *testing.T) {
	rt := &Runtime{
		ParseAddress: func(s string) (net.Addr, error) {
			return net.ResolveTCPAddr("tcp", s)
		},
	}

	t.Run("AbsentWhenUnbound", func(t *testing.T) {
		cfg := newTestConfig(t, Options{Runtime: rt})
		addr, err := cfg.Addr()
		require.NoError(t, err)
		assert.Nil(t, addr)
	})

	t.Run("ParsedWhenSet", func(t *testing.T) {
		reg := Builtin()
		require.NoError(t, reg.Register(&Setting{
			Name:     "bind",
			Section:  "Server Socket",
			Flags:    []string{"-b", "--bind"},
			Kind:     KindString,
			Validate: ValidateString,
			Desc:     "The socket to bind.",
		}))
		cfg, err := New(reg, Options{Runtime: rt})
		require.NoError(t, err)
		require.NoError(t, cfg.Set("bind", "127.0.0.1:8000"))

		addr, err := cfg.Addr()
		require.NoError(t, err)
		require.NotNil(t, addr)
		assert.Equal(t, "127.0.0.1:8000", addr.String())
	})
}

func TestConfigResolveWorkerClass(t *testing.T) {
	loaded := &fakeWorkerClass{}
	rt := &Runtime{
		LoadWorkerClass: func(uri string) (WorkerClass, error) {
			if uri != "thread" {
				return nil, fmt.Errorf("unknown worker class: %s", uri)
			}
			return loaded, nil
		},
	}

	t.Run("UnknownWithoutDeclaration", func(t *testing.T) {
		cfg := newTestConfig(t, Options{Runtime: rt})
		_, err := cfg.ResolveWorkerClass()
		require.ErrorIs(t, err, ErrUnknownSetting)
	})

	t.Run("AppScopedDeclaration", func(t *testing.T) {
		reg := Builtin()
		require.NoError(t, reg.Register(&Setting{
			Name:     "worker_class",
			Section:  "Worker Processes",
			App:      "wsgi",
			Kind:     KindString,
			Validate: ValidateString,
			Default:  "thread",
			Desc:     "The worker class URI.",
		}))
		cfg, err := New(reg, Options{App: "wsgi", Runtime: rt})
		require.NoError(t, err)

		cls, err := cfg.ResolveWorkerClass()
		require.NoError(t, err)
		assert.Same(t, loaded, cls)
		assert.Equal(t, 1, loaded.setupCalls)
	})
}

func TestConfigHooks(t *testing.T) {
	cfg := newTestConfig(t, Options{})

	t.Run("DefaultsAreCallable", func(t *testing.T) {
		assert.NotPanics(t, func() {
			cfg.WhenReady()(&fakeProcess{name: "arbiter", pid: 1})
			cfg.PreFork()(&fakeProcess{name: "worker.1", pid: 2})
			cfg.PostFork()(&fakeProcess{name: "worker.1", pid: 2})
			cfg.PreExec()(&fakeProcess{name: "arbiter", pid: 1})
			cfg.WorkerExit()(&fakeProcess{name: "worker.1", pid: 2})
			cfg.PreRequest()(&fakeProcess{name: "worker.1", pid: 2}, &fakeRequest{"GET", "/"})
			cfg.PostRequest()(&fakeProcess{name: "worker.1", pid: 2}, &fakeRequest{"GET", "/"})
		})
	})

	t.Run("CustomHookRuns", func(t *testing.T) {
		var forked []string
		err := cfg.Set("post_fork", func(p Process) {
			forked = append(forked, p.Name())
		})
		require.NoError(t, err)

		cfg.PostFork()(&fakeProcess{name: "worker.7", pid: 99})
		assert.Equal(t, []string{"worker.7"}, forked)
	})

	t.Run("WrongSignatureRejected", func(t *testing.T) {
		err := cfg.Set("post_fork", func() {})
		require.Error(t, err)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestConfigTypedAccessorMismatch(t *testing.T) {
	cfg := newTestConfig(t, Options{})
	_, err := cfg.Int("loglevel")
	assert.Error(t, err)
}
