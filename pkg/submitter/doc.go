/*
Package submitter implements the action-submission pipeline.

A Submitter takes a domain.Request and runs it through one fixed sequence:

 1. refuse the trigger if the same action is already in flight (optional guard);
 2. show the busy indicator, if the request names one;
 3. encode the payload and issue exactly one HTTP call;
 4. hide the busy indicator as soon as the call settles;
 5. classify the result as Success, TransportError or ServerError;
 6. resolve the request's success or failure transition into a single
    domain.Effect and hand it to the Presenter.

The submitter never retries. Each failure is surfaced once and the user must
trigger the action again.
*/
package submitter
