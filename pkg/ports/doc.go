/*
Package ports defines the driven ports (interfaces) of the SFS web client.

These interfaces decouple the submission pipeline from the places it reports to,
so the same submitter can drive a terminal, an HTTP monitor or an agent.

# Key Interfaces

  - Presenter: receives busy toggles and the single effect of each resolved request.
  - StatusStore: persists status board snapshots between processes.
  - Confirmer: asks the user before destructive actions.
  - Locker: provides the non-blocking lock behind the in-flight guard.
*/
package ports
