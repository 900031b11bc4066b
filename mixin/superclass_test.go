package mixin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodMac/mixin-lens/model"
)

func TestCheckSuperclass_EntityWorld(t *testing.T) {
	tests := []struct {
		name     string
		super    string
		targets  []string
		wantKind model.DiagnosticKind
		wantMsg  string
	}{
		{name: "no superclass", super: "", targets: []string{"test.Minecrell"}},
		{name: "common ancestor", super: "test.Entity", targets: []string{"test.Minecrell"}},
		{name: "object is implicit", super: "java.lang.Object", targets: []string{"test.DemonWav"}},
		{
			name:     "extends its own target",
			super:    "test.DemonWav",
			targets:  []string{"test.DemonWav"},
			wantKind: model.SelfExtension,
			wantMsg:  "Cannot extend target class",
		},
		{
			name:     "sibling not in hierarchy",
			super:    "test.Minecrell",
			targets:  []string{"test.DemonWav"},
			wantKind: model.NotInHierarchy,
			wantMsg:  "Cannot find 'Minecrell' in the hierarchy of target class 'DemonWav'",
		},
		{name: "unresolved superclass", super: "test.Unknown", targets: []string{"test.DemonWav"}},
		{name: "no resolvable targets", super: "test.Minecrell", targets: []string{"test.Unknown"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := entityWorld()
			f.add("java.lang.Object", "")
			m := f.mixinOf("test.SuperClassMixin", tt.super, tt.targets...)

			d, failed := CheckSuperclass(f, m)
			if tt.wantKind == "" {
				assert.False(t, failed, "unexpected diagnostic: %+v", d)
				return
			}
			require.True(t, failed)
			assert.Equal(t, tt.wantKind, d.Kind)
			assert.Equal(t, tt.wantMsg, d.Message)
			assert.Equal(t, model.InspectionSuperClass, d.Inspection)
			assert.Equal(t, m.SuperclassSpan, d.Span)
			assert.Equal(t, "test.SuperClassMixin", d.Mixin)
		})
	}
}

func TestCheckSuperclass_FirstFailingTargetWins(t *testing.T) {
	f := entityWorld()
	f.add("test.Other", "")
	m := f.mixinOf("test.M", "test.Entity", "test.DemonWav", "test.Other", "test.Entity")

	d, failed := CheckSuperclass(f, m)
	require.True(t, failed)
	assert.Equal(t, model.NotInHierarchy, d.Kind)
	assert.Equal(t, "test.Other", d.Target)
	assert.Equal(t, "Cannot find 'Entity' in the hierarchy of target class 'Other'", d.Message)
}

func TestCheckSuperclass_SelfTargetAmongValidTargets(t *testing.T) {
	f := entityWorld()
	m := f.mixinOf("test.M", "test.Entity", "test.DemonWav", "test.Entity")

	diags := SuperClassInspection{}.Inspect(f, m)
	require.Len(t, diags, 1)
	assert.Equal(t, model.SelfExtension, diags[0].Kind)
	assert.Equal(t, "test.Entity", diags[0].Target)
	assert.Equal(t, "Cannot extend target class", diags[0].Message)
}

func TestCheckSuperclass_UsesMixinDeclaredSuperclass(t *testing.T) {
	f := entityWorld()
	m := f.mixinOf("test.M", "test.Minecrell", "test.DemonWav")

	// 声明父类为空 (例如 extends Object 已在绑定时归一) 即视为未声明
	m.DeclaredSuperclass = ""
	_, failed := CheckSuperclass(f, m)
	assert.False(t, failed)

	m.DeclaredSuperclass = "test.Entity"
	_, failed = CheckSuperclass(f, m)
	assert.False(t, failed)

	m.DeclaredSuperclass = "test.Minecrell"
	d, failed := CheckSuperclass(f, m)
	require.True(t, failed)
	assert.Equal(t, "test.Minecrell", d.Declared)
}

func TestCheckSuperclass_DeepChain(t *testing.T) {
	f := newFakeTable()
	f.add("p.Root", "")
	f.add("p.Mid", "p.Root")
	f.add("p.Leaf", "p.Mid")
	m := f.mixinOf("p.LeafMixin", "p.Root", "p.Leaf")

	_, failed := CheckSuperclass(f, m)
	assert.False(t, failed)
}

func TestCheckSuperclass_IncompleteHierarchySkipsTarget(t *testing.T) {
	f := newFakeTable()
	f.addExternal("lib.Base")
	f.add("p.Target", "lib.Base")
	f.add("p.Unrelated", "")
	m := f.mixinOf("p.M", "p.Unrelated", "p.Target")

	_, failed := CheckSuperclass(f, m)
	assert.False(t, failed)
}

func TestCheckSuperclass_IncompleteTargetDoesNotHideLaterFailure(t *testing.T) {
	f := newFakeTable()
	f.addExternal("lib.Base")
	f.add("p.Target", "lib.Base")
	f.add("p.Plain", "")
	f.add("p.Unrelated", "")
	m := f.mixinOf("p.M", "p.Unrelated", "p.Target", "p.Plain")

	d, failed := CheckSuperclass(f, m)
	require.True(t, failed)
	assert.Equal(t, "p.Plain", d.Target)
}

func TestCheckSuperclass_CycleTerminates(t *testing.T) {
	f := newFakeTable()
	f.add("p.A", "p.B")
	f.add("p.B", "p.A")
	f.add("p.Unrelated", "")
	m := f.mixinOf("p.M", "p.Unrelated", "p.A")

	_, failed := CheckSuperclass(f, m)
	assert.False(t, failed)
}

func TestCheckSuperclass_DeclaredInsideCycleStillPasses(t *testing.T) {
	f := newFakeTable()
	f.add("p.A", "p.B")
	f.add("p.B", "p.A")
	m := f.mixinOf("p.M", "p.B", "p.A")

	_, failed := CheckSuperclass(f, m)
	assert.False(t, failed)
}

func TestSuperClassInspection_Inspect(t *testing.T) {
	f := entityWorld()
	m := f.mixinOf("test.M", "test.DemonWav", "test.DemonWav")

	in := SuperClassInspection{}
	assert.Equal(t, "MixinSuperClass", in.ID())
	diags := in.Inspect(f, m)
	require.Len(t, diags, 1)
	assert.Equal(t, model.SelfExtension, diags[0].Kind)
}
