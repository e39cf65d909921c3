package rates

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"

	"homeledger/internal/config"
)

// Client fetches the central bank's published policy rate, shown next to
// the loan terms for comparison against what the loan charges
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new reference-rate client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url: cfg.RatesURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// fetchSeries requests the rate series as SDMX generic-data XML
func (c *Client) fetchSeries() ([]byte, error) {
	req, err := http.NewRequest("GET", c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Accept", "application/vnd.sdmx.genericdata+xml;version=2.1")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	c.log.Debugf("Rate feed XML response: %s", string(body))

	return body, nil
}

// parseSeries extracts the newest observation from the series. SDMX
// generic-data observations carry the period and value as attributes of
// child elements:
//
//	<generic:Obs>
//	  <generic:ObsDimension value="2024-02-29"/>
//	  <generic:ObsValue value="4.25"/>
//	</generic:Obs>
func parseSeries(rawBody []byte) (float64, string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return 0, "", fmt.Errorf("failed to parse XML: %v", err)
	}

	observations := doc.FindElements("//Obs")
	if len(observations) == 0 {
		return 0, "", fmt.Errorf("no observations found in rate series")
	}

	// Observations arrive oldest first.
	latest := observations[len(observations)-1]
	value := latest.FindElement("./ObsValue")
	if value == nil {
		return 0, "", fmt.Errorf("observation has no value element")
	}
	rate, err := strconv.ParseFloat(value.SelectAttrValue("value", ""), 64)
	if err != nil {
		return 0, "", fmt.Errorf("failed to parse rate: %v", err)
	}

	period := ""
	if dim := latest.FindElement("./ObsDimension"); dim != nil {
		period = dim.SelectAttrValue("value", "")
	}

	return rate, period, nil
}

// GetReferenceRate retrieves the most recent central-bank reference rate
func (c *Client) GetReferenceRate() (float64, error) {
	body, err := c.fetchSeries()
	if err != nil {
		return 0, err
	}

	rate, period, err := parseSeries(body)
	if err != nil {
		return 0, err
	}

	c.log.Infof("Retrieved reference rate: %.2f%% (period %s)", rate, period)
	return rate, nil
}
