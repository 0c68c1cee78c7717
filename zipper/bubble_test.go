package zipper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lcinvent/lcinvent/shift"
	"github.com/lcinvent/lcinvent/term"
	"github.com/lcinvent/lcinvent/walk"
	"github.com/lcinvent/lcinvent/zipper"
)

// TestBubbleAppProducesBothSides checks that App(f, x) yields a zipper
// bubbled from f (with x as right sibling) and one bubbled from x (with f as
// left sibling), in addition to each leaf's own identity being pruned.
func TestBubbleAppProducesBothSides(t *testing.T) {
	s := term.NewStore()
	f := s.Prim("f")
	x := s.Prim("x")
	app, err := s.App(f, x)
	require.NoError(t, err)

	order, err := walk.ChildFirst(s, []term.NodeId{app})
	require.NoError(t, err)

	sh := shift.New(s, false)
	z, _, err := zipper.Bubble(s, sh, order)
	require.NoError(t, err)

	require.Len(t, z[f], 0)
	require.Len(t, z[x], 0)
	require.Len(t, z[app], 2)

	var sawFunc, sawArg bool
	for _, az := range z[app] {
		require.Len(t, az.Path, 1)
		switch az.Path[0] {
		case zipper.StepFunc:
			sawFunc = true
			require.Equal(t, f, az.Arg)
			require.Equal(t, x, az.Right[0])
		case zipper.StepArg:
			sawArg = true
			require.Equal(t, x, az.Arg)
			require.Equal(t, f, az.Left[0])
		}
	}
	require.True(t, sawFunc)
	require.True(t, sawArg)
}

// TestBubbleLamDropsEscapingVar checks that a zipper whose argument mentions
// the binder's own variable does not bubble past the Lam.
func TestBubbleLamDropsEscapingVar(t *testing.T) {
	s := term.NewStore()
	plus := s.Prim("+")
	v0 := s.Var(0)
	app, err := s.App(plus, v0)
	require.NoError(t, err)
	lam, err := s.Lam(app)
	require.NoError(t, err)

	order, err := walk.ChildFirst(s, []term.NodeId{lam})
	require.NoError(t, err)

	sh := shift.New(s, false)
	z, _, err := zipper.Bubble(s, sh, order)
	require.NoError(t, err)

	// app has a bubble into v0 (Arg side) whose Arg is v0, referencing $0:
	// that one must not survive into z[lam]. The bubble into plus (Func
	// side) has Arg=plus, a closed term, and does survive.
	for _, az := range z[lam] {
		require.False(t, s.FreeVars(az.Arg).Contains(0))
	}
}

// TestBubbleLamShiftsSurvivingArg checks that an argument surviving a Lam
// crossing is downshifted by one.
func TestBubbleLamShiftsSurvivingArg(t *testing.T) {
	s := term.NewStore()
	plus := s.Prim("+")
	v1 := s.Var(1)
	app, err := s.App(plus, v1)
	require.NoError(t, err)
	lam, err := s.Lam(app)
	require.NoError(t, err)

	order, err := walk.ChildFirst(s, []term.NodeId{lam})
	require.NoError(t, err)

	sh := shift.New(s, false)
	z, remap, err := zipper.Bubble(s, sh, order)
	require.NoError(t, err)

	var found bool
	for _, az := range z[lam] {
		if az.Path[len(az.Path)-1] == zipper.StepArg {
			found = true
			require.Equal(t, term.KindVar, s.Kind(az.Arg))
			require.Equal(t, 0, s.Index(az.Arg))
			require.Equal(t, v1, remap[az.Arg])
		}
	}
	require.True(t, found)
}

// TestBubbleRejectsIVar checks that an invention variable reaching bubbling
// is a fatal error rather than silently accepted.
func TestBubbleRejectsIVar(t *testing.T) {
	s := term.NewStore()
	iv := s.IVar(0)

	sh := shift.New(s, false)
	_, _, err := zipper.Bubble(s, sh, []term.NodeId{iv})
	require.ErrorIs(t, err, zipper.ErrIVarInCorpus)
}
