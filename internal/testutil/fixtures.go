package testutil

// ScenarioHCL is a composite of two atomic statecharts: A raises start on
// leaving Idle and B switches On when it receives it. Execution order is
// [a, b].
const ScenarioHCL = `
package "scenario" {
  interface "Start" {
    signal "start" {
      direction = "out"
    }
  }

  statechart "A" {
    port "link" {
      interface = "Start"
    }
    region "main" {
      initial = "Idle"
      state "Idle" {}
      state "Running" {}
    }
    transition {
      name   = "go"
      source = "Idle"
      target = "Running"
      raise  = ["link.start"]
    }
  }

  statechart "B" {
    port "link" {
      interface   = "Start"
      realization = "required"
    }
    region "main" {
      initial = "Off"
      state "Off" {}
      state "On" {}
    }
    transition {
      name    = "switchOn"
      source  = "Off"
      target  = "On"
      trigger = "link.start"
    }
  }

  composite "System" {
    instance "a" {
      component = "A"
    }
    instance "b" {
      component = "B"
    }
    connect {
      from = "a.link.start"
      to   = "b.link.start"
    }
    execution = ["a", "b"]
  }
}
`

// CrossroadHCL nests a composite of two lights inside a top composite with
// a third light. It exercises own ports at both levels, timeouts, guards,
// assignments and a composite state.
const CrossroadHCL = `
package "crossroad" {
  interface "Control" {
    signal "toggle" {
      direction = "in"
    }
    signal "done" {
      direction = "out"
    }
  }

  statechart "Light" {
    port "control" {
      interface = "Control"
    }
    variable "count" {
      type    = integer
      initial = 0
    }
    region "main" {
      initial = "Red"
      state "Red" {}
      state "Green" {
        region "blink" {
          initial = "On"
          state "On" {}
          state "Off" {}
        }
      }
    }
    transition {
      name    = "toGreen"
      source  = "Red"
      target  = "Green"
      trigger = "control.toggle"
      guard   = "count < 3"
      raise   = ["control.done"]
      assign = {
        count = "count + 1"
      }
    }
    transition {
      name    = "blinkOff"
      source  = "On"
      target  = "Off"
      trigger = "after(500)"
    }
    transition {
      name    = "blinkOn"
      source  = "Off"
      target  = "On"
      trigger = "after(500)"
    }
    transition {
      name     = "toRed"
      source   = "Green"
      target   = "Red"
      trigger  = "control.toggle"
      priority = 1
    }
  }

  composite "Pair" {
    port "control" {
      interface = "Control"
    }
    instance "prior" {
      component = "Light"
    }
    instance "secondary" {
      component = "Light"
    }
    connect {
      from = "control.toggle"
      to   = "prior.control.toggle"
    }
    connect {
      from = "prior.control.done"
      to   = "secondary.control.toggle"
    }
    connect {
      from = "secondary.control.done"
      to   = "control.done"
    }
    execution = ["prior", "secondary"]
  }

  composite "Crossroad" {
    port "control" {
      interface = "Control"
    }
    instance "main" {
      component = "Pair"
    }
    instance "side" {
      component = "Light"
    }
    connect {
      from = "control.toggle"
      to   = "main.control.toggle"
    }
    connect {
      from = "main.control.done"
      to   = "side.control.toggle"
    }
  }
}
`
