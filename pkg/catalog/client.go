package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tooldock/tooldock/pkg/a2a"
)

// AgentCard is an alias to a2a.AgentCard for simplicity in our API.
type AgentCard = a2a.AgentCard

// CatalogClient provides functionality to interact with the agent catalog service.
type CatalogClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewCatalogClient creates a new catalog client with the given base URL.
func NewCatalogClient(baseURL string) *CatalogClient {
	return &CatalogClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetAgents retrieves all agent cards from the catalog.
func (c *CatalogClient) GetAgents() ([]AgentCard, error) {
	url := fmt.Sprintf("%s/.well-known/catalog.json", c.baseURL)

	log.Debug("fetching agents from catalog", "url", url)

	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, &ConnectionError{Message: "catalog unreachable", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("catalog returned non-OK status: %d, body: %s", resp.StatusCode, string(body))
	}

	var agents []AgentCard
	if err := json.NewDecoder(resp.Body).Decode(&agents); err != nil {
		return nil, &DecodingError{Message: "catalog listing", Err: err}
	}

	log.Debug("retrieved agents from catalog", "count", len(agents))
	return agents, nil
}

// GetAgent retrieves a specific agent card by ID from the catalog.
func (c *CatalogClient) GetAgent(id string) (*AgentCard, error) {
	url := fmt.Sprintf("%s/agent/%s", c.baseURL, id)

	log.Debug("fetching agent from catalog", "agentID", id, "url", url)

	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, &ConnectionError{Message: "catalog unreachable", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusNotFound {
			return nil, &NotFoundError{AgentID: id}
		}
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("catalog returned non-OK status: %d, body: %s", resp.StatusCode, string(body))
	}

	var agent AgentCard
	if err := json.NewDecoder(resp.Body).Decode(&agent); err != nil {
		return nil, &DecodingError{Message: "agent card", Err: err}
	}

	return &agent, nil
}

// RegisterAgent publishes an agent card to the catalog.
func (c *CatalogClient) RegisterAgent(card AgentCard) error {
	url := fmt.Sprintf("%s/agent", c.baseURL)

	log.Debug("registering agent with catalog", "agentID", card.ID, "url", url)

	body, err := json.Marshal(card)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return &ConnectionError{Message: "catalog unreachable", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return &RegistrationError{StatusCode: resp.StatusCode, Message: string(msg)}
	}

	return nil
}
