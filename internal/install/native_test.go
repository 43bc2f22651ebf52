package install

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/zappi/internal/errors"
	"github.com/thoreinstein/zappi/internal/platform"
	"github.com/thoreinstein/zappi/internal/runner/mocks"
	"github.com/thoreinstein/zappi/internal/store"
)

func expectAttempt(r *mocks.MockRunner, a Attempt, err error) {
	args := make([]interface{}, len(a.Args))
	for i, v := range a.Args {
		args[i] = v
	}
	r.EXPECT().Run(mock.Anything, a.Name, args...).Return(nil, err).Once()
}

func TestAttempts(t *testing.T) {
	tests := []struct {
		tag         platform.Tag
		wantMethods []string
		wantFirst   []string
	}{
		{platform.Darwin, []string{"brew", "brew-cask"}, []string{"brew", "install", "visual-studio-code"}},
		{platform.Windows, []string{"winget", "choco"}, []string{"winget", "install", "--exact", "--silent", "Visual Studio Code"}},
		{platform.Linux, []string{"apt", "dnf", "pacman"}, []string{"sudo", "apt-get", "install", "-y", "visual-studio-code"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.tag), func(t *testing.T) {
			got := Attempts(tt.tag, "Visual Studio Code")

			methods := make([]string, len(got))
			for i, a := range got {
				methods[i] = a.Method
			}
			assert.Equal(t, tt.wantMethods, methods)
			assert.Equal(t, tt.wantFirst, append([]string{got[0].Name}, got[0].Args...))
		})
	}

	assert.Empty(t, Attempts(platform.Unknown, "x"))
}

func TestTools(t *testing.T) {
	assert.Equal(t, []string{"brew"}, Tools(platform.Darwin))
	assert.Equal(t, []string{"winget", "choco"}, Tools(platform.Windows))
	assert.Equal(t, []string{"apt-get", "dnf", "pacman"}, Tools(platform.Linux))
	assert.Empty(t, Tools(platform.Unknown))
}

func TestPackageName(t *testing.T) {
	assert.Equal(t, "firefox", PackageName("Firefox"))
	assert.Equal(t, "google-chrome", PackageName("  Google   Chrome "))
}

func TestNative_FirstSucceeds(t *testing.T) {
	r := mocks.NewMockRunner(t)
	r.EXPECT().LookPath("brew").Return("/opt/homebrew/bin/brew", nil)
	expectAttempt(r, Attempts(platform.Darwin, "Slack")[0], nil)

	out := (&Native{Tag: platform.Darwin, Runner: r}).Install(t.Context(), store.Record{Name: "Slack"})

	assert.True(t, out.Success)
	assert.Equal(t, MethodBrew, out.Method)
	assert.Equal(t, "Successfully installed Slack", out.Message)
}

func TestNative_FallsBackInOrder(t *testing.T) {
	r := mocks.NewMockRunner(t)
	attempts := Attempts(platform.Linux, "htop")
	r.EXPECT().LookPath("apt-get").Return("", errors.New("not found"))
	r.EXPECT().LookPath("dnf").Return("/usr/bin/dnf", nil)
	r.EXPECT().LookPath("pacman").Return("/usr/bin/pacman", nil)
	expectAttempt(r, attempts[1], errors.New("No match for argument: htop"))
	expectAttempt(r, attempts[2], nil)

	out := (&Native{Tag: platform.Linux, Runner: r, Timeout: time.Minute}).Install(t.Context(), store.Record{Name: "htop"})

	assert.True(t, out.Success)
	assert.Equal(t, MethodPacman, out.Method)
}

func TestNative_AllFail(t *testing.T) {
	r := mocks.NewMockRunner(t)
	attempts := Attempts(platform.Windows, "Git")
	r.EXPECT().LookPath("winget").Return(`C:\winget.exe`, nil)
	r.EXPECT().LookPath("choco").Return(`C:\choco.exe`, nil)
	expectAttempt(r, attempts[0], errors.New("winget failed"))
	expectAttempt(r, attempts[1], errors.New("choco failed"))

	out := (&Native{Tag: platform.Windows, Runner: r}).Install(t.Context(), store.Record{Name: "Git"})

	assert.False(t, out.Success)
	assert.Equal(t, MethodChoco, out.Method)
	assert.Contains(t, out.Error, "choco failed")
}

func TestNative_UnknownPlatform(t *testing.T) {
	r := mocks.NewMockRunner(t)

	out := (&Native{Tag: platform.Unknown, Runner: r}).Install(t.Context(), store.Record{Name: "Git"})

	assert.False(t, out.Success)
	assert.Equal(t, platform.MethodManual, out.Method)
}

func TestNative_RejectsFlagLikeNames(t *testing.T) {
	r := mocks.NewMockRunner(t)

	out := (&Native{Tag: platform.Linux, Runner: r}).Install(t.Context(), store.Record{Name: "--help"})

	assert.False(t, out.Success)
	assert.Contains(t, out.Error, "invalid package name")
}

func TestNewBackend(t *testing.T) {
	r := mocks.NewMockRunner(t)

	b, err := NewBackend(KindSimulated, platform.Darwin, nil, WithSimulation(0.5, 0, time.Millisecond))
	require.NoError(t, err)
	sim, ok := b.(*Simulated)
	require.True(t, ok)
	assert.InDelta(t, 0.5, sim.SuccessRate, 1e-9)
	assert.Equal(t, "brew", b.Method())

	b, err = NewBackend("", platform.Linux, nil)
	require.NoError(t, err)
	assert.IsType(t, &Simulated{}, b)

	b, err = NewBackend(KindNative, platform.Linux, r, WithItemTimeout(time.Minute))
	require.NoError(t, err)
	native, ok := b.(*Native)
	require.True(t, ok)
	assert.Equal(t, time.Minute, native.Timeout)

	_, err = NewBackend(KindNative, platform.Linux, nil)
	assert.Error(t, err)

	_, err = NewBackend("docker", platform.Linux, r)
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
}
