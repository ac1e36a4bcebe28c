package unfold_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/sc2ta/internal/hcl"
	"github.com/vk/sc2ta/internal/model"
	"github.com/vk/sc2ta/internal/testutil"
	"github.com/vk/sc2ta/internal/unfold"
)

func instanceNames(c *model.Component) []string {
	var out []string
	for _, inst := range c.Composite.Instances {
		out = append(out, inst.Name)
	}
	return out
}

func connectionStrings(c *model.Component) []string {
	var out []string
	for _, conn := range c.Composite.Connections {
		out = append(out, conn.String())
	}
	return out
}

func TestUnfold_Crossroad(t *testing.T) {
	// --- Arrange ---
	pkg := testutil.LoadPackage(t, testutil.CrossroadHCL)
	before := string(hcl.EncodeModel(pkg))

	// --- Act ---
	out, top, err := unfold.New().Unfold(context.Background(), pkg)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "Crossroad", top.Name)
	assert.Same(t, top, out.Components[len(out.Components)-1])
	require.Len(t, out.Components, 2, "only the reachable statechart and the flat top remain")
	assert.Equal(t, "Light", out.Components[0].Name)

	assert.Equal(t, []string{"main_prior", "main_secondary", "side"}, instanceNames(top))
	assert.Equal(t, "main.prior", top.Composite.Instances[0].Origin)
	assert.Equal(t, "main.secondary", top.Composite.Instances[1].Origin)
	assert.Empty(t, top.Composite.Instances[2].Origin)
	for _, inst := range top.Composite.Instances {
		assert.Same(t, out.Components[0], inst.Component)
	}

	assert.Equal(t, []string{
		"control.toggle -> main_prior.control.toggle",
		"main_prior.control.done -> main_secondary.control.toggle",
		"main_secondary.control.done -> side.control.toggle",
	}, connectionStrings(top))
	assert.Equal(t, []string{"main_prior", "main_secondary", "side"}, top.Composite.Execution)

	require.Len(t, top.Ports, 1)
	assert.Same(t, out.Interfaces[0], top.Ports[0].Interface)
	assert.NotSame(t, pkg.Interfaces[0], out.Interfaces[0])

	assert.Equal(t, before, string(hcl.EncodeModel(pkg)), "input package must not be modified")
}

func TestUnfold_Deterministic(t *testing.T) {
	pkg := testutil.LoadPackage(t, testutil.CrossroadHCL)

	first, _, err := unfold.New().Unfold(context.Background(), pkg)
	require.NoError(t, err)
	second, _, err := unfold.New().Unfold(context.Background(), pkg)
	require.NoError(t, err)

	assert.Equal(t, string(hcl.EncodeModel(first)), string(hcl.EncodeModel(second)))
}

func TestUnfold_Idempotent(t *testing.T) {
	opts := append(unfold.CompareOptions(), cmpopts.IgnoreFields(model.Package{}, "FSInfo"))

	t.Run("flat input", func(t *testing.T) {
		pkg := testutil.LoadPackage(t, testutil.ScenarioHCL)

		out, _, err := unfold.New().Unfold(context.Background(), pkg)

		require.NoError(t, err)
		if diff := cmp.Diff(pkg, out, opts); diff != "" {
			t.Errorf("unfolding a flat package changed it (-want +got):\n%s", diff)
		}
	})

	t.Run("unfolded input", func(t *testing.T) {
		pkg := testutil.LoadPackage(t, testutil.CrossroadHCL)
		once, _, err := unfold.New().Unfold(context.Background(), pkg)
		require.NoError(t, err)

		twice, _, err := unfold.New().Unfold(context.Background(), once)

		require.NoError(t, err)
		if diff := cmp.Diff(once, twice, opts); diff != "" {
			t.Errorf("unfolding twice differs from unfolding once (-want +got):\n%s", diff)
		}
	})
}

func TestUnfold_NameCollision(t *testing.T) {
	// --- Arrange ---
	pkg := testutil.LoadPackage(t, `
		package "p" {
		  statechart "Leaf" {
		    region "r" {
		      initial = "A"
		      state "A" {}
		    }
		  }
		  composite "Y" {
		    instance "p" { component = "Leaf" }
		  }
		  composite "Top" {
		    instance "y" { component = "Y" }
		    instance "y_p" { component = "Leaf" }
		  }
		}
	`)

	// --- Act ---
	_, top, err := unfold.New().Unfold(context.Background(), pkg)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{"y_p_2", "y_p"}, instanceNames(top))
	assert.Equal(t, "y.p", top.Composite.Instances[0].Origin)
	assert.Empty(t, top.Composite.Execution, "no composite declares an execution order")
}

func TestUnfold_Errors(t *testing.T) {
	const leaf = `
		  statechart "Leaf" {
		    region "r" {
		      initial = "A"
		      state "A" {}
		    }
		  }
	`
	testCases := []struct {
		name      string
		src       string
		wantErr   string
		selection bool
	}{
		{
			name:      "no root",
			src:       `package "p" {` + leaf + `}`,
			selection: true,
		},
		{
			name: "two roots",
			src: `package "p" {` + leaf + `
				  composite "A" {
				    instance "x" { component = "Leaf" }
				  }
				  composite "B" {
				    instance "x" { component = "Leaf" }
				  }
				}`,
			selection: true,
		},
		{
			name: "containment cycle",
			src: `package "p" {` + leaf + `
				  composite "C" {
				    instance "d" { component = "D" }
				  }
				  composite "D" {
				    instance "c" { component = "C" }
				  }
				  composite "Top" {
				    instance "c" { component = "C" }
				  }
				}`,
			wantErr: "containment cycle: Top -> C -> D -> C",
		},
		{
			name: "no leaves",
			src: `package "p" {
				  composite "Empty" {}
				  composite "Top" {
				    instance "e" { component = "Empty" }
				  }
				}`,
			wantErr: `composite "Top" has no atomic components after unfolding`,
		},
		{
			name: "unknown instance in connection",
			src: `package "p" {` + leaf + `
				  composite "Top" {
				    instance "x" { component = "Leaf" }
				    connect {
				      from = "x.p.o"
				      to   = "ghost.p.i"
				    }
				  }
				}`,
			wantErr: `unknown instance "ghost"`,
		},
		{
			name: "unknown instance in execution",
			src: `package "p" {` + leaf + `
				  composite "Top" {
				    instance "x" { component = "Leaf" }
				    execution = ["x", "ghost"]
				  }
				}`,
			wantErr: `execution names unknown instance "ghost"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Arrange ---
			pkg := testutil.LoadPackage(t, tc.src)

			// --- Act ---
			_, _, err := unfold.New().Unfold(context.Background(), pkg)

			// --- Assert ---
			require.Error(t, err)
			if tc.selection {
				var selErr *model.SelectionError
				assert.True(t, errors.As(err, &selErr), "want a selection error, got %v", err)
				return
			}
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestResolveEquivalent(t *testing.T) {
	// --- Arrange ---
	ctx := context.Background()
	store := hcl.NewStore()
	pkg := testutil.LoadPackage(t, testutil.CrossroadHCL)
	flat, top, err := unfold.New().Unfold(ctx, pkg)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), ".crossroad.gsm")
	require.NoError(t, store.SaveModel(ctx, path, flat))
	reloaded, err := store.Load(ctx, path)
	require.NoError(t, err)

	t.Run("same structure", func(t *testing.T) {
		got, err := unfold.ResolveEquivalent(reloaded, top)

		require.NoError(t, err)
		assert.NotSame(t, top, got)
		assert.Equal(t, top.Name, got.Name)
	})

	t.Run("different structure", func(t *testing.T) {
		reloaded.Component("Crossroad").Composite.Instances[0].Origin = "elsewhere"

		_, err := unfold.ResolveEquivalent(reloaded, top)

		var idErr *unfold.IdentityError
		require.ErrorAs(t, err, &idErr)
		assert.Equal(t, "Crossroad", idErr.Component)
		assert.NotEmpty(t, idErr.Diff)
	})

	t.Run("missing component", func(t *testing.T) {
		_, err := unfold.ResolveEquivalent(&model.Package{Name: "empty"}, top)

		var idErr *unfold.IdentityError
		require.ErrorAs(t, err, &idErr)
		assert.Empty(t, idErr.Diff)
	})
}
