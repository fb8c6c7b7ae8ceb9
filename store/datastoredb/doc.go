/*
Package datastoredb provides an implementation of github.com/shinyhunt/scorebot/store's DocumentStorer interface
backed by the Google Cloud Datastore.

Requirements for the Google Cloud Datastore integration:
  - A valid project id with datastore mode enabled
  - Google Cloud Credentials (typically in the form of a json file with credentials from https://console.cloud.google.com/apis/credentials/serviceaccountkey)

Example code:

	import (
		"github.com/shinyhunt/scorebot/store/datastoredb"
		"google.golang.org/api/option"
	)

	func main() {
		// The first argument is the entity kind, the second is the gcloud project id and the rest are client options
		// (most commonly, the path to a json credentials file)
		storer, err := datastoredb.New("scoreboard", "my-project", option.WithCredentialsFile(*gcloudCredentialsFile))
		if err != nil {
			log.Fatalf("Opening scoreboard datastore failed: %s", err.Error())
		}
		defer storer.Close()

		scores, err := scoreboard.Open(storer)
		...
	}
*/
package datastoredb
