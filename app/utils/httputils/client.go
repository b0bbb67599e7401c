package httputils

import (
	"context"
	"fmt"

	"github.com/golangci/submission-evaluator/app/utils/runmode"
	"github.com/levigross/grequests"
	"github.com/sirupsen/logrus"
)

type Client interface {
	PutJSON(ctx context.Context, url string, payload interface{}) error
}

type GrequestsClient struct{}

var _ Client = GrequestsClient{}

func (c GrequestsClient) PutJSON(ctx context.Context, url string, payload interface{}) error {
	resp, err := grequests.Put(url, &grequests.RequestOptions{
		Context:            ctx,
		JSON:               payload,
		InsecureSkipVerify: !runmode.IsProduction(),
	})
	if err != nil {
		return fmt.Errorf("unable to make http request %q: %s", url, err)
	}

	defer func() {
		if cerr := resp.Close(); cerr != nil {
			logrus.Warnf("Can't close %q response: %s", url, cerr)
		}
	}()

	if !resp.Ok {
		return fmt.Errorf("got error code from %q: %d", url, resp.StatusCode)
	}

	return nil
}
