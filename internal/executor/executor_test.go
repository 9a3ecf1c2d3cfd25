package executor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"media-clipper/internal/plan"
	"media-clipper/internal/request"
	"media-clipper/internal/resolver"
	"media-clipper/internal/workspace"
)

func testExecutor(run runFunc) *Executor {
	e := New(Config{
		YtDlpPath:        "yt-dlp",
		FFmpegPath:       "ffmpeg",
		FetchTimeout:     5 * time.Second,
		TranscodeTimeout: 5 * time.Second,
		SidecarTimeout:   5 * time.Second,
		ThumbnailWidth:   1280,
	})
	e.run = run
	return e
}

func newTestWorkspace(t *testing.T) *workspace.Handle {
	t.Helper()
	m, err := workspace.NewManager(filepath.Join(t.TempDir(), "scratch"), time.Hour)
	if err != nil {
		t.Fatalf("NewManager returned error: %v", err)
	}
	ws, err := m.Acquire()
	if err != nil {
		t.Fatalf("Acquire returned error: %v", err)
	}
	t.Cleanup(ws.Release)
	return ws
}

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func videoPlan(mode request.Mode, clip *request.ClipWindow) *plan.Plan {
	d := &request.Descriptor{
		URL:          "https://www.youtube.com/watch?v=abc",
		VideoQuality: request.Quality720p,
		AudioQuality: request.AudioBest,
		Mode:         mode,
		Clip:         clip,
	}
	res := resolver.Resolution{Height: 720, Label: "720p", Selector: "best[height<=720]"}
	return plan.Build(d, res, &resolver.SourceMetadata{})
}

func TestFetchLocatesOutput(t *testing.T) {
	ws := newTestWorkspace(t)
	e := testExecutor(func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		writeFile(t, ws.Path("media.mp4"), 1024)
		writeFile(t, ws.Path("media.mp4.part"), 10)
		return nil, nil, nil
	})

	got, err := e.Fetch(context.Background(), videoPlan(request.ModeBalanced, nil), "https://www.youtube.com/watch?v=abc", ws)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if got != ws.Path("media.mp4") {
		t.Errorf("Fetch = %q, want media.mp4 in workspace", got)
	}
}

func TestFetchPrefersLargestCandidate(t *testing.T) {
	ws := newTestWorkspace(t)
	e := testExecutor(func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		writeFile(t, ws.Path("media.f137.mp4"), 100)
		writeFile(t, ws.Path("media.mp4"), 4096)
		return nil, nil, nil
	})

	got, err := e.Fetch(context.Background(), videoPlan(request.ModeBalanced, nil), "https://www.youtube.com/watch?v=abc", ws)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if got != ws.Path("media.mp4") {
		t.Errorf("Fetch = %q, want the largest candidate", got)
	}
}

func TestFetchNoOutput(t *testing.T) {
	ws := newTestWorkspace(t)
	e := testExecutor(func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		return nil, nil, nil
	})

	_, err := e.Fetch(context.Background(), videoPlan(request.ModeBalanced, nil), "https://www.youtube.com/watch?v=abc", ws)
	if !errors.Is(err, ErrFetchFailed) {
		t.Errorf("error %v is not ErrFetchFailed", err)
	}
}

func TestFetchTimeout(t *testing.T) {
	ws := newTestWorkspace(t)
	e := testExecutor(func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		<-ctx.Done()
		return nil, nil, ctx.Err()
	})
	e.cfg.FetchTimeout = 20 * time.Millisecond

	_, err := e.Fetch(context.Background(), videoPlan(request.ModeBalanced, nil), "https://www.youtube.com/watch?v=abc", ws)
	if !errors.Is(err, ErrProcessingTimeout) {
		t.Errorf("error %v is not ErrProcessingTimeout", err)
	}
}

func TestFetchFailureCarriesDiagnostic(t *testing.T) {
	ws := newTestWorkspace(t)
	e := testExecutor(func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		return nil, []byte("WARNING: minor\nERROR: fragment 3 not found\n"), errors.New("exit status 1")
	})

	_, err := e.Fetch(context.Background(), videoPlan(request.ModeBalanced, nil), "https://www.youtube.com/watch?v=abc", ws)
	if !errors.Is(err, ErrFetchFailed) {
		t.Fatalf("error %v is not ErrFetchFailed", err)
	}
	if !strings.Contains(err.Error(), "fragment 3 not found") {
		t.Errorf("error %q missing tool diagnostic", err)
	}
}

func TestTranscodeWritesOutput(t *testing.T) {
	ws := newTestWorkspace(t)
	input := ws.Path("media.mp4")
	writeFile(t, input, 2048)

	var gotName string
	e := testExecutor(func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		gotName = name
		writeFile(t, args[len(args)-1], 512)
		return nil, nil, nil
	})

	out, err := e.Transcode(context.Background(), videoPlan(request.ModeFast, &request.ClipWindow{Start: 5, End: 15}), input, ws)
	if err != nil {
		t.Fatalf("Transcode returned error: %v", err)
	}
	if gotName != "ffmpeg" {
		t.Errorf("invoked %q, want ffmpeg", gotName)
	}
	if out != ws.Path("output.mp4") {
		t.Errorf("Transcode = %q, want output.mp4 in workspace", out)
	}
}

func TestTranscodeAudioOutputExtension(t *testing.T) {
	ws := newTestWorkspace(t)
	input := ws.Path("media.m4a")
	writeFile(t, input, 2048)

	e := testExecutor(func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		writeFile(t, args[len(args)-1], 512)
		return nil, nil, nil
	})

	out, err := e.Transcode(context.Background(), videoPlan(request.ModeAudioOnly, nil), input, ws)
	if err != nil {
		t.Fatalf("Transcode returned error: %v", err)
	}
	if out != ws.Path("output.mp3") {
		t.Errorf("Transcode = %q, want output.mp3", out)
	}
}

func TestTranscodeEmptyOutput(t *testing.T) {
	ws := newTestWorkspace(t)
	input := ws.Path("media.mp4")
	writeFile(t, input, 2048)

	e := testExecutor(func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		writeFile(t, args[len(args)-1], 0)
		return nil, nil, nil
	})

	_, err := e.Transcode(context.Background(), videoPlan(request.ModeFast, &request.ClipWindow{Start: 0, End: 10}), input, ws)
	if !errors.Is(err, ErrTranscodeFailed) {
		t.Errorf("error %v is not ErrTranscodeFailed", err)
	}
}

func TestTranscodeFailureCarriesDiagnostic(t *testing.T) {
	ws := newTestWorkspace(t)
	input := ws.Path("media.mp4")
	writeFile(t, input, 2048)

	e := testExecutor(func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		return nil, []byte("ffmpeg version n6.0\nInvalid data found when processing input\n"), errors.New("exit status 1")
	})

	_, err := e.Transcode(context.Background(), videoPlan(request.ModeFast, &request.ClipWindow{Start: 0, End: 10}), input, ws)
	if !errors.Is(err, ErrTranscodeFailed) {
		t.Fatalf("error %v is not ErrTranscodeFailed", err)
	}
	if !strings.Contains(err.Error(), "Invalid data found") {
		t.Errorf("error %q missing tool diagnostic", err)
	}
}

func TestExecuteClipPipeline(t *testing.T) {
	ws := newTestWorkspace(t)
	e := testExecutor(func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		switch name {
		case "yt-dlp":
			writeFile(t, ws.Path("media.mp4"), 4096)
		case "ffmpeg":
			writeFile(t, args[len(args)-1], 1024)
		}
		return nil, nil, nil
	})

	p := videoPlan(request.ModeBalanced, &request.ClipWindow{Start: 10, End: 30})
	meta := &resolver.SourceMetadata{Title: "Big Buck Bunny"}
	result, err := e.Execute(context.Background(), p, "https://www.youtube.com/watch?v=abc", meta, ws)
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if result.Primary != ws.Path("Big Buck Bunny_10s-30s.mp4") {
		t.Errorf("Primary = %q, want renamed transcoded output", result.Primary)
	}
	if _, err := os.Stat(result.Primary); err != nil {
		t.Errorf("stat primary: %v", err)
	}
	if len(result.Sidecars) != 0 {
		t.Errorf("Sidecars = %v, want none", result.Sidecars)
	}
}

func TestExecuteFullLengthSkipsTranscode(t *testing.T) {
	ws := newTestWorkspace(t)
	invocations := 0
	e := testExecutor(func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		invocations++
		writeFile(t, ws.Path("media.mp4"), 4096)
		return nil, nil, nil
	})

	meta := &resolver.SourceMetadata{Title: "Sample"}
	result, err := e.Execute(context.Background(), videoPlan(request.ModePrecise, nil), "https://www.youtube.com/watch?v=abc", meta, ws)
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if invocations != 1 {
		t.Errorf("invocations = %d, want fetch only", invocations)
	}
	if result.Primary != ws.Path("Sample.mp4") {
		t.Errorf("Primary = %q, want fetched file under its delivery name", result.Primary)
	}
}

func TestDeliverPrimaryNaming(t *testing.T) {
	tests := []struct {
		name  string
		title string
		clip  *request.ClipWindow
		want  string
	}{
		{"plain title", "My Talk", nil, "My Talk.mp4"},
		{"reserved characters", `a<b>c:d"e/f\g|h?i*j`, nil, "a_b_c_d_e_f_g_h_i_j.mp4"},
		{"empty title", "", nil, "untitled.mp4"},
		{"clip window", "My Talk", &request.ClipWindow{Start: 5, End: 25}, "My Talk_5s-25s.mp4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := newTestWorkspace(t)
			produced := ws.Path("output.mp4")
			writeFile(t, produced, 100)

			got, err := deliverPrimary(produced, &plan.Plan{Clip: tt.clip}, &resolver.SourceMetadata{Title: tt.title}, ws)
			if err != nil {
				t.Fatalf("deliverPrimary returned error: %v", err)
			}
			if got != ws.Path(tt.want) {
				t.Errorf("deliverPrimary = %q, want %q", got, ws.Path(tt.want))
			}
			if _, err := os.Stat(got); err != nil {
				t.Errorf("stat renamed primary: %v", err)
			}
		})
	}
}

func TestDiagnosticTail(t *testing.T) {
	tests := []struct {
		name   string
		stderr string
		want   string
	}{
		{"prefers last error line", "ERROR: first\nprogress\nERROR: second\n", "second"},
		{"falls back to last line", "line one\nline two\n", "line two"},
		{"empty", "", "no diagnostic output"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := diagnosticTail([]byte(tt.stderr)); got != tt.want {
				t.Errorf("diagnosticTail = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsTempArtifact(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"media.mp4.part", true},
		{"media.mp4.ytdl", true},
		{"media.temp", true},
		{"media.mp4", false},
		{"media.webm", false},
	}

	for _, tt := range tests {
		if got := isTempArtifact(tt.name); got != tt.want {
			t.Errorf("isTempArtifact(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
