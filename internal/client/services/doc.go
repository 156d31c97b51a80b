// Package services contains application services for the CRM client.
//
// Services sit between the shell views and the remote API. Every successful
// mutation is mirrored into a local cache.Collection so list views stay in
// sync with the last known server state without refetching.
package services
