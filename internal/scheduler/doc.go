// Package scheduler encodes how the atomic components of a flattened
// composite take turns in the generated automata network.
//
// # Policies
//
// The policy is chosen once per run and changes the shape of the network,
// not a parameter inside it:
//
//   - Fixed: a coordinator template named Scheduler drives one step of
//     every component per round, in execution order. Each step is a binary
//     synchronisation on a step channel owned by the stepped component. The
//     coordinator waits in urgent locations between steps, so a component's
//     committed raise chain always completes before the next step and no
//     time passes inside a round. The global stability flag is cleared on
//     the first step of a round and set again when the round closes.
//   - Random: there is no coordinator. Component step edges carry no
//     synchronisation and the model checker's interleaving explores every
//     order. Components maintain the stability flag themselves.
//
// # Relationship with Other Components
//
//   - transform: binds the scheduler before it builds component templates
//     (to learn each template's step label) and encodes it afterwards.
//   - uppaal: the scheduler declares channels and templates in the network.
package scheduler
