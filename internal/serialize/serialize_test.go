package serialize_test

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/sc2ta/internal/serialize"
	"github.com/vk/sc2ta/internal/uppaal"
)

func lightNetwork() (*uppaal.Network, []uppaal.StableLocations) {
	net := uppaal.NewNetwork()
	net.Declare("bool isStable = true;")
	net.AddChannel("env_toggle_light_toggle", uppaal.SignalChannel, true)

	light := uppaal.NewTemplate("light", uppaal.ComponentTemplate)
	light.Declare("clock clk;")
	red := light.AddLocation("Red", uppaal.Normal)
	green := light.AddLocation("Green", uppaal.Committed)
	on := light.AddLocation("On", uppaal.Normal)
	on.Invariant = "clk <= 500"
	step := light.AddEdge(red, green)
	step.Guard = "clk >= 500 && toggle"
	step.Update = "toggle = false"
	light.AddEdge(green, on).Update = "clk = 0"
	net.AddTemplate(light)

	sched := uppaal.NewTemplate("Scheduler", uppaal.SchedulerTemplate)
	ready := sched.AddLocation("Ready", uppaal.Normal)
	w1 := sched.AddLocation("W1", uppaal.Urgent)
	sched.AddEdge(ready, w1).Sync = "step_light!"
	sched.AddEdge(w1, ready)
	net.AddTemplate(sched)

	index := []uppaal.StableLocations{{Template: light, Locations: []*uppaal.Location{red, on}}}
	return net, index
}

type decoded struct {
	Declaration string `xml:"declaration"`
	Templates   []struct {
		Name      string `xml:"name"`
		Locations []struct {
			ID        string    `xml:"id,attr"`
			Name      string    `xml:"name"`
			Committed *struct{} `xml:"committed"`
			Urgent    *struct{} `xml:"urgent"`
		} `xml:"location"`
		Init struct {
			Ref string `xml:"ref,attr"`
		} `xml:"init"`
		Transitions []struct {
			Labels []struct {
				Kind  string `xml:"kind,attr"`
				Value string `xml:",chardata"`
			} `xml:"label"`
		} `xml:"transition"`
	} `xml:"template"`
	System string `xml:"system"`
}

func TestEncodeXML(t *testing.T) {
	// --- Arrange ---
	net, _ := lightNetwork()

	// --- Act ---
	out, err := serialize.EncodeXML(net)

	// --- Assert ---
	require.NoError(t, err)
	text := string(out)
	assert.True(t, strings.HasPrefix(text, xml.Header))
	assert.Contains(t, text, "<!DOCTYPE nta")
	assert.Contains(t, text, "clk &gt;= 500 &amp;&amp; toggle", "labels are escaped")

	var doc decoded
	require.NoError(t, xml.Unmarshal(out, &doc))
	assert.Equal(t, "bool isStable = true;\nbroadcast chan env_toggle_light_toggle;", doc.Declaration)
	assert.Equal(t, "system light, Scheduler;", doc.System)

	require.Len(t, doc.Templates, 2)
	light := doc.Templates[0]
	assert.Equal(t, "light", light.Name)
	require.Len(t, light.Locations, 3)
	assert.Equal(t, "id0", light.Init.Ref)
	assert.NotNil(t, light.Locations[1].Committed)
	assert.Nil(t, light.Locations[0].Committed)

	require.Len(t, light.Transitions, 2)
	labels := map[string]string{}
	for _, l := range light.Transitions[0].Labels {
		labels[l.Kind] = l.Value
	}
	assert.Equal(t, map[string]string{
		"guard":      "clk >= 500 && toggle",
		"assignment": "toggle = false",
	}, labels)

	sched := doc.Templates[1]
	assert.Equal(t, "id3", sched.Locations[0].ID, "ids are unique across templates")
	assert.NotNil(t, sched.Locations[1].Urgent)
	assert.Empty(t, sched.Transitions[1].Labels)
}

func TestEncodeXML_Deterministic(t *testing.T) {
	first, _ := lightNetwork()
	second, _ := lightNetwork()

	a, err := serialize.EncodeXML(first)
	require.NoError(t, err)
	b, err := serialize.EncodeXML(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestEncodeXML_ForeignLocation(t *testing.T) {
	net, _ := lightNetwork()
	light := net.Template("light")
	stray := &uppaal.Location{Name: "Stray"}
	light.AddEdge(light.Location("Red"), stray)

	_, err := serialize.EncodeXML(net)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside the template")
}

func TestEncodeQueries(t *testing.T) {
	_, index := lightNetwork()

	got := serialize.EncodeQueries(index)

	assert.Equal(t, "E<> light.Red && isStable\nE<> light.On && isStable\n", string(got))
	assert.Empty(t, serialize.EncodeQueries(nil))
}
