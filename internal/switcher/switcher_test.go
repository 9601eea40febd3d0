package switcher

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/frudas24/monswitch/internal/display"
	"github.com/frudas24/monswitch/internal/layout"
	"github.com/frudas24/monswitch/internal/monitor"
	"github.com/frudas24/monswitch/internal/testutil"
)

// captureLog redirects the standard logger for the duration of the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
	})
	return &buf
}

// TestRun_Game verifies the game preset stages both monitors and commits.
func TestRun_Game(t *testing.T) {
	api := testutil.NewTwoMonitorAPI()
	res, err := New(api, Options{}).Run(layout.Game)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.State != StateDone {
		t.Fatalf("expected done, got %s", res.State)
	}
	stages := api.Stages()
	if len(stages) != 2 || api.Count("Commit") != 1 {
		t.Fatalf("expected 2 stages and 1 commit, got %d and %d", len(stages), api.Count("Commit"))
	}
	if stages[0].Device != `\\.\DISPLAY1` || stages[0].Flags&display.SetPrimary == 0 {
		t.Fatalf("expected HP staged first as primary, got %+v", stages[0])
	}
	if stages[1].Device != `\\.\DISPLAY2` || stages[1].Flags&display.SetPrimary != 0 {
		t.Fatalf("expected Dell staged second as secondary, got %+v", stages[1])
	}
	for _, c := range stages {
		if c.Flags&display.NoReset == 0 || c.Flags&display.UpdateRegistry == 0 {
			t.Fatalf("expected staged flags, got %#x", uint32(c.Flags))
		}
	}
}

// TestRun_Work verifies the work preset makes the anchor primary.
func TestRun_Work(t *testing.T) {
	api := testutil.NewTwoMonitorAPI()
	res, err := New(api, Options{}).Run(layout.Work)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !res.Plan.Anchor.Primary || res.Plan.Rotating.Mode.Orientation != display.Orientation90 {
		t.Fatalf("unexpected plan %+v", res.Plan)
	}
	if !api.Devices[1].Primary || api.Devices[0].Primary {
		t.Fatalf("expected Dell to become primary")
	}
	if api.Devices[0].Mode.X != 2560 || api.Devices[0].Mode.Y != -263 {
		t.Fatalf("unexpected HP position %v", api.Devices[0].Mode)
	}
}

// TestRun_RoundTrip verifies game, work, game yields identical plans for the same hardware.
func TestRun_RoundTrip(t *testing.T) {
	api := testutil.NewTwoMonitorAPI()
	sw := New(api, Options{})

	first, err := sw.Run(layout.Game)
	if err != nil {
		t.Fatalf("game failed: %v", err)
	}
	work, err := sw.Run(layout.Work)
	if err != nil {
		t.Fatalf("work failed: %v", err)
	}
	second, err := sw.Run(layout.Game)
	if err != nil {
		t.Fatalf("second game failed: %v", err)
	}

	if first.Plan.Rotating != second.Plan.Rotating || first.Plan.Anchor.Mode.X != second.Plan.Anchor.Mode.X ||
		first.Plan.Anchor.Mode.Y != second.Plan.Anchor.Mode.Y || first.Plan.Anchor.Primary != second.Plan.Anchor.Primary {
		t.Fatalf("expected identical game plans, got %+v and %+v", first.Plan, second.Plan)
	}
	if work.Plan.Rotating.Device != first.Plan.Rotating.Device {
		t.Fatalf("expected HP identified consistently, got %s vs %s", work.Plan.Rotating.Device, first.Plan.Rotating.Device)
	}

	again, err := sw.Run(layout.Work)
	if err != nil {
		t.Fatalf("second work failed: %v", err)
	}
	if again.Plan.Rotating != work.Plan.Rotating || again.Plan.Anchor.Primary != work.Plan.Anchor.Primary {
		t.Fatalf("expected identical work plans, got %+v and %+v", work.Plan, again.Plan)
	}
}

// TestRun_StageFailureSkipsCommit verifies a rejected stage never reaches commit.
func TestRun_StageFailureSkipsCommit(t *testing.T) {
	for _, dev := range []string{`\\.\DISPLAY1`, `\\.\DISPLAY2`} {
		api := testutil.NewTwoMonitorAPI()
		api.StageCodes = map[string]display.Status{dev: display.BadMode}
		res, err := New(api, Options{}).Run(layout.Game)

		var ce *ChangeError
		if !errors.As(err, &ce) {
			t.Fatalf("%s: expected ChangeError, got %v", dev, err)
		}
		if ce.Device != dev || ce.Step != StepStage || ce.Status != display.BadMode {
			t.Fatalf("%s: unexpected error %+v", dev, ce)
		}
		if !strings.Contains(err.Error(), dev) || !strings.Contains(err.Error(), "Graphics mode not supported") {
			t.Fatalf("%s: unexpected message %q", dev, err.Error())
		}
		if api.Count("Commit") != 0 {
			t.Fatalf("%s: expected no commit", dev)
		}
		if res.State != StateAborted {
			t.Fatalf("%s: expected aborted, got %s", dev, res.State)
		}
	}
}

// TestRun_RotatingStageFailureSkipsAnchor verifies a rejected HP stage stops before the Dell is staged.
func TestRun_RotatingStageFailureSkipsAnchor(t *testing.T) {
	api := testutil.NewTwoMonitorAPI()
	api.StageCodes = map[string]display.Status{`\\.\DISPLAY1`: display.BadParam}
	if _, err := New(api, Options{}).Run(layout.Work); err == nil {
		t.Fatalf("expected stage failure")
	}
	stages := api.Stages()
	if len(stages) != 1 || stages[0].Device != `\\.\DISPLAY1` {
		t.Fatalf("expected only the HP stage, got %+v", stages)
	}
	if api.Count("Commit") != 0 {
		t.Fatalf("expected no commit")
	}
}

// TestRun_StageLabels verifies the error names the HP and Dell monitors.
func TestRun_StageLabels(t *testing.T) {
	api := testutil.NewTwoMonitorAPI()
	api.StageCodes = map[string]display.Status{`\\.\DISPLAY2`: display.BadFlags}
	_, err := New(api, Options{}).Run(layout.Work)
	want := `failed to stage Dell display settings on \\.\DISPLAY2: Invalid flags`
	if err == nil || err.Error() != want {
		t.Fatalf("expected %q, got %v", want, err)
	}
	if len(api.Stages()) != 2 {
		t.Fatalf("expected HP staged before Dell failed")
	}
}

// TestRun_CommitFailure verifies a rejected commit aborts with the decoded reason.
func TestRun_CommitFailure(t *testing.T) {
	api := testutil.NewTwoMonitorAPI()
	api.CommitCode = display.NotUpdated
	res, err := New(api, Options{}).Run(layout.Game)
	want := "failed to apply display settings: Unable to write settings to registry"
	if err == nil || err.Error() != want {
		t.Fatalf("expected %q, got %v", want, err)
	}
	if res.State != StateAborted {
		t.Fatalf("expected aborted, got %s", res.State)
	}
}

// TestRun_EnumerationFailure verifies nothing is read or staged without two displays.
func TestRun_EnumerationFailure(t *testing.T) {
	api := testutil.NewTwoMonitorAPI()
	api.Devices = api.Devices[:1]
	_, err := New(api, Options{}).Run(layout.Game)
	if !errors.Is(err, display.ErrNamesUnresolved) {
		t.Fatalf("expected ErrNamesUnresolved, got %v", err)
	}
	if api.Count("CurrentMode") != 0 || api.Count("Stage") != 0 {
		t.Fatalf("expected no reads or stages")
	}
}

// TestRun_ReadFailure verifies a read failure aborts before staging.
func TestRun_ReadFailure(t *testing.T) {
	api := testutil.NewTwoMonitorAPI()
	api.ReadErr = map[string]error{`\\.\DISPLAY2`: errors.New("gone")}
	res, err := New(api, Options{}).Run(layout.Work)
	if err == nil || !strings.Contains(err.Error(), `\\.\DISPLAY2`) {
		t.Fatalf("expected read error naming device, got %v", err)
	}
	if api.Count("Stage") != 0 || res.State != StateAborted {
		t.Fatalf("expected abort before staging")
	}
}

// TestRun_DryRun verifies a dry run plans without staging.
func TestRun_DryRun(t *testing.T) {
	api := testutil.NewTwoMonitorAPI()
	res, err := New(api, Options{DryRun: true}).Run(layout.Work)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.State != StatePlanned {
		t.Fatalf("expected planned, got %s", res.State)
	}
	if api.Count("Stage") != 0 || api.Count("Commit") != 0 {
		t.Fatalf("expected no changes requested")
	}
	if res.Plan.Rotating.Mode.Width != 1080 {
		t.Fatalf("unexpected plan %+v", res.Plan)
	}
}

// TestRun_VerifyMismatchWarns verifies an unexpected live layout is logged per monitor.
func TestRun_VerifyMismatchWarns(t *testing.T) {
	buf := captureLog(t)
	api := testutil.NewTwoMonitorAPI()
	lister := func() ([]monitor.Monitor, error) {
		return []monitor.Monitor{
			{Index: 1, Device: `\\.\DISPLAY1`, W: 1920, H: 1080, Primary: true},
			{Index: 2, Device: `\\.\DISPLAY2`, X: 1920, Y: 0, W: 2560, H: 1440},
		}, nil
	}
	if _, err := New(api, Options{Lister: lister}).Run(layout.Game); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "warning: Dell monitor") {
		t.Fatalf("expected Dell mismatch warning, got %q", out)
	}
	if strings.Contains(out, "warning: HP monitor") {
		t.Fatalf("unexpected HP warning in %q", out)
	}
}

// TestRun_VerifyWrongPrimaryWarns verifies a monitor with the wrong primary flag is logged.
func TestRun_VerifyWrongPrimaryWarns(t *testing.T) {
	buf := captureLog(t)
	api := testutil.NewTwoMonitorAPI()
	lister := func() ([]monitor.Monitor, error) {
		return []monitor.Monitor{
			{Index: 1, Device: `\\.\DISPLAY1`, X: 2560, Y: -263, W: 1080, H: 1920, Primary: true},
			{Index: 2, Device: `\\.\DISPLAY2`, W: 2560, H: 1440},
		}, nil
	}
	if _, err := New(api, Options{Lister: lister}).Run(layout.Work); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "warning: HP monitor") || !strings.Contains(out, "warning: Dell monitor") {
		t.Fatalf("expected warnings for both monitors, got %q", out)
	}
}

// TestRun_VerifyMissingMonitorWarns verifies a planned device absent from the live list is logged.
func TestRun_VerifyMissingMonitorWarns(t *testing.T) {
	buf := captureLog(t)
	api := testutil.NewTwoMonitorAPI()
	lister := func() ([]monitor.Monitor, error) {
		return []monitor.Monitor{{Index: 1, Device: `\\.\DISPLAY1`, W: 1920, H: 1080, Primary: true}}, nil
	}
	if _, err := New(api, Options{Lister: lister}).Run(layout.Game); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(buf.String(), `Dell monitor \\.\DISPLAY2 not found`) {
		t.Fatalf("expected missing monitor warning, got %q", buf.String())
	}
}

// TestRun_VerifyMatchQuiet verifies a matching live layout logs nothing.
func TestRun_VerifyMatchQuiet(t *testing.T) {
	buf := captureLog(t)
	api := testutil.NewTwoMonitorAPI()
	lister := func() ([]monitor.Monitor, error) {
		return []monitor.Monitor{
			{Index: 1, Device: `\\.\DISPLAY1`, W: 1920, H: 1080, Primary: true},
			{Index: 2, Device: `\\.\DISPLAY2`, X: -2560, Y: -155, W: 2560, H: 1440},
		}, nil
	}
	if _, err := New(api, Options{Lister: lister}).Run(layout.Game); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no log output, got %q", buf.String())
	}
}

// TestRun_AmbiguousWarns verifies two anchor-width monitors are reported.
func TestRun_AmbiguousWarns(t *testing.T) {
	buf := captureLog(t)
	api := testutil.NewTwoMonitorAPI()
	api.Devices[0].Mode.Width = layout.AnchorWidth
	res, err := New(api, Options{DryRun: true}).Run(layout.Game)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !res.Plan.Ambiguous || !strings.Contains(buf.String(), "warning: both displays") {
		t.Fatalf("expected ambiguity warning, got %q", buf.String())
	}
}

// TestApply_Order verifies rotating, anchor, commit ordering.
func TestApply_Order(t *testing.T) {
	api := testutil.NewTwoMonitorAPI()
	plan, err := layout.Build(layout.Work,
		layout.Screen{Device: `\\.\DISPLAY1`, Mode: api.Devices[0].Mode},
		layout.Screen{Device: `\\.\DISPLAY2`, Mode: api.Devices[1].Mode},
	)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if err := Apply(api, plan); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	var names []string
	for _, c := range api.Calls {
		names = append(names, c.Name+":"+c.Device)
	}
	got := strings.Join(names, ",")
	want := `Stage:\\.\DISPLAY1,Stage:\\.\DISPLAY2,Commit:`
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

// TestStateString verifies state names.
func TestStateString(t *testing.T) {
	if StateStagedAnchor.String() != "staged-anchor" || State(99).String() != "unknown" {
		t.Fatalf("unexpected state names")
	}
}

// TestRun_UnknownPresetAborts verifies an out-of-range preset never stages a change.
func TestRun_UnknownPresetAborts(t *testing.T) {
	api := testutil.NewTwoMonitorAPI()
	res, err := New(api, Options{}).Run(layout.Preset(9))
	if !errors.Is(err, layout.ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset, got %v", err)
	}
	if res.State != StateAborted || api.Count("Stage") != 0 || api.Count("Commit") != 0 {
		t.Fatalf("expected abort before staging, got state=%s", res.State)
	}
}
