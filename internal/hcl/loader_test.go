package hcl_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/sc2ta/internal/hcl"
	"github.com/vk/sc2ta/internal/model"
	"github.com/vk/sc2ta/internal/testutil"
	"github.com/zclconf/go-cty/cty"
)

func TestLoad_Crossroad(t *testing.T) {
	// --- Arrange ---
	path := testutil.WriteModel(t, "crossroad", testutil.CrossroadHCL)

	// --- Act ---
	pkg, err := hcl.NewStore().Load(context.Background(), path)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "crossroad", pkg.Name)
	assert.Equal(t, "crossroad", pkg.FSInfo.BaseName())
	require.Len(t, pkg.Interfaces, 1)
	require.Len(t, pkg.Components, 3)
	assert.Equal(t, "Light", pkg.Components[0].Name, "statecharts are registered before composites")

	light := pkg.Component("Light")
	require.NotNil(t, light.Statechart)
	require.Len(t, light.Ports, 1)
	assert.Same(t, pkg.Interface("Control"), light.Ports[0].Interface)
	assert.Equal(t, model.Provided, light.Ports[0].Realization)

	v := light.Statechart.Variable("count")
	require.NotNil(t, v)
	assert.Equal(t, model.TypeInteger, v.Type)
	assert.True(t, v.Initial.Equals(cty.Zero).True())

	require.Len(t, light.Statechart.Transitions, 4)
	toGreen := light.Statechart.Transitions[0]
	assert.Equal(t, "toGreen", toGreen.Name)
	assert.Equal(t, "control.toggle", toGreen.Trigger)
	assert.Equal(t, "count < 3", toGreen.Guard)
	assert.Equal(t, []string{"control.done"}, toGreen.Raise)
	assert.Equal(t, []model.Assignment{{Variable: "count", Value: "count + 1"}}, toGreen.Assign)
	assert.Equal(t, 1, light.Statechart.Transitions[3].Priority)

	pair := pkg.Component("Pair")
	require.NotNil(t, pair.Composite)
	assert.Same(t, light, pair.Composite.Instance("prior").Component)
	assert.Equal(t, []string{"prior", "secondary"}, pair.Composite.Execution)
	require.Len(t, pair.Composite.Connections, 3)
	assert.Equal(t, "control.toggle -> prior.control.toggle", pair.Composite.Connections[0].String())
	assert.True(t, pair.Composite.Connections[0].From.IsOwn())
}

func TestLoad_Defaults(t *testing.T) {
	// --- Arrange ---
	src := `
		package "p" {
		  interface "I" {
		    signal "s" {
		      direction = "in"
		    }
		  }
		  statechart "S" {
		    port "p" {
		      interface = "I"
		    }
		    variable "flag" {
		      type = boolean
		    }
		    variable "n" {
		      type = integer
		    }
		    region "r" {
		      initial = "A"
		      state "A" {}
		      state "B" {}
		    }
		    transition {
		      source = "A"
		      target = "B"
		    }
		    transition {
		      source = "B"
		      target = "A"
		    }
		  }
		}
	`

	// --- Act ---
	pkg := testutil.LoadPackage(t, src)

	// --- Assert ---
	sc := pkg.Component("S").Statechart
	assert.True(t, sc.Variable("flag").Initial.RawEquals(cty.False))
	assert.True(t, sc.Variable("n").Initial.RawEquals(cty.Zero))
	assert.Equal(t, "T1", sc.Transitions[0].Name)
	assert.Equal(t, "T2", sc.Transitions[1].Name)
	assert.Equal(t, model.Provided, pkg.Component("S").Ports[0].Realization)
}

func TestLoad_Directory(t *testing.T) {
	t.Run("single model file", func(t *testing.T) {
		path := testutil.WriteModel(t, "scenario", testutil.ScenarioHCL)

		pkg, err := hcl.NewStore().Load(context.Background(), filepath.Dir(path))

		require.NoError(t, err)
		assert.Equal(t, "scenario", pkg.Name)
	})

	t.Run("two model files", func(t *testing.T) {
		path := testutil.WriteModel(t, "scenario", testutil.ScenarioHCL)
		dir := filepath.Dir(path)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "other.hcl"), []byte(testutil.ScenarioHCL), 0o644))

		_, err := hcl.NewStore().Load(context.Background(), dir)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "exactly one .hcl model file, found 2")
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := hcl.NewStore().Load(context.Background(), filepath.Join(t.TempDir(), "nope.hcl"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "error accessing path")
	})
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			name:    "syntax error",
			src:     `package "p" {`,
			wantErr: "failed to parse HCL file",
		},
		{
			name:    "no package",
			src:     ``,
			wantErr: "exactly one \"package\" block, found 0",
		},
		{
			name:    "two packages",
			src:     "package \"a\" {}\npackage \"b\" {}\n",
			wantErr: "found 2",
		},
		{
			name: "unknown interface",
			src: `
				package "p" {
				  statechart "S" {
				    port "x" {
				      interface = "Missing"
				    }
				  }
				}`,
			wantErr: `port "x": unknown interface "Missing"`,
		},
		{
			name: "unknown component",
			src: `
				package "p" {
				  composite "C" {
				    instance "i" {
				      component = "Missing"
				    }
				  }
				}`,
			wantErr: `instance "i": unknown component "Missing"`,
		},
		{
			name: "bad direction",
			src: `
				package "p" {
				  interface "I" {
				    signal "s" {
				      direction = "sideways"
				    }
				  }
				}`,
			wantErr: `direction must be "in" or "out"`,
		},
		{
			name: "bad realization",
			src: `
				package "p" {
				  interface "I" {}
				  statechart "S" {
				    port "x" {
				      interface   = "I"
				      realization = "maybe"
				    }
				  }
				}`,
			wantErr: `realization must be "provided" or "required"`,
		},
		{
			name: "quoted type",
			src: `
				package "p" {
				  statechart "S" {
				    variable "v" {
				      type = "integer"
				    }
				  }
				}`,
			wantErr: "invalid type specification",
		},
		{
			name: "duplicate component",
			src: `
				package "p" {
				  statechart "S" {}
				  composite "S" {}
				}`,
			wantErr: `component "S" is declared more than once`,
		},
		{
			name: "malformed endpoint",
			src: `
				package "p" {
				  composite "C" {
				    connect {
				      from = "a"
				      to   = "b.c"
				    }
				  }
				}`,
			wantErr: `connection from "a"`,
		},
		{
			name: "assign not an object",
			src: `
				package "p" {
				  statechart "S" {
				    transition {
				      name   = "t"
				      source = "A"
				      target = "A"
				      assign = "x = 1"
				    }
				  }
				}`,
			wantErr: `transition "t": assign must be an object`,
		},
		{
			name: "assign value not quoted",
			src: `
				package "p" {
				  statechart "S" {
				    transition {
				      name   = "t"
				      source = "A"
				      target = "A"
				      assign = { x = 1 }
				    }
				  }
				}`,
			wantErr: `assign "x" must be a quoted expression`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Arrange ---
			path := testutil.WriteModel(t, "model", tc.src)

			// --- Act ---
			_, err := hcl.NewStore().Load(context.Background(), path)

			// --- Assert ---
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoad_AssignKeepsSourceOrder(t *testing.T) {
	// --- Arrange ---
	src := `
		package "p" {
		  statechart "S" {
		    variable "y" {
		      type = integer
		    }
		    variable "x" {
		      type = integer
		    }
		    region "r" {
		      initial = "A"
		      state "A" {}
		    }
		    transition {
		      name   = "swap"
		      source = "A"
		      target = "A"
		      assign = {
		        y = "x"
		        x = "y + 1"
		      }
		    }
		  }
		}`
	path := testutil.WriteModel(t, "model", src)
	want := []model.Assignment{
		{Variable: "y", Value: "x"},
		{Variable: "x", Value: "y + 1"},
	}

	// --- Act ---
	pkg, err := hcl.NewStore().Load(context.Background(), path)

	// --- Assert ---
	require.NoError(t, err)
	swap := pkg.Component("S").Statechart.Transitions[0]
	assert.Equal(t, want, swap.Assign)

	// The persisted form keeps the order as well.
	saved := filepath.Join(t.TempDir(), ".model.gsm")
	require.NoError(t, hcl.NewStore().SaveModel(context.Background(), saved, pkg))
	reloaded, err := hcl.NewStore().Load(context.Background(), saved)
	require.NoError(t, err)
	assert.Equal(t, want, reloaded.Component("S").Statechart.Transitions[0].Assign)
}
