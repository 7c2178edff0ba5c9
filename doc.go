/*
Package sfsweb submits user actions to an SFS (Simple File Sync) backend and
keeps a single status board in sync with the results.

Every action goes through the same pipeline: validate the input, show a busy
indicator, issue exactly one HTTP call, hide the indicator, classify the
result and write one effect (a status message, an alert or a navigation) to
the board. A background poller keeps the online/offline indicator current.

# Usage

	client, err := sfsweb.New("http://localhost:8080",
		sfsweb.WithHealthURL("http://localhost:8080/health"),
	)
	if err != nil {
		log.Fatal(err)
	}

	out, err := client.Search(ctx, "tax returns")
	if err != nil {
		// a *domain.ValidationError: nothing was sent
		log.Fatal(err)
	}
	fmt.Println(out.Kind, client.Board().Snapshot().Location)

# Errors

Validation failures are returned as *domain.ValidationError before any call is
made. Network failures and non-2xx responses are not returned as errors: they
are classified on the domain.Outcome (domain.OutcomeTransportError,
domain.OutcomeServerError) and already reflected on the board. A second
trigger of an action that is still running is refused with
domain.OutcomeSuppressed.
*/
package sfsweb
