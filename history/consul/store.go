package consul

import (
	"context"
	"sort"
	"strings"

	"github.com/hashicorp/consul/api"
	"github.com/mwantia/argtree/history"
)

// ConsulStore keeps one KV entry per history entry below a key prefix.
// Consul limits values to 512KB, which is far above the size of a command line.
type ConsulStore struct {
	client *api.Client
	kv     *api.KV

	config *ConsulStoreConfig
}

type ConsulStoreConfig struct {
	// Address of the Consul server (default: "127.0.0.1:8500")
	Address string

	// Token for Consul ACL authentication (optional)
	Token string

	// Prefix for all keys (default: "argtree/history")
	Prefix string
}

func NewConsulStore(config *ConsulStoreConfig) (*ConsulStore, error) {
	if config == nil {
		config = &ConsulStoreConfig{}
	}

	if config.Address == "" {
		config.Address = "127.0.0.1:8500"
	}
	if config.Prefix == "" {
		config.Prefix = "argtree/history"
	}
	config.Prefix = strings.Trim(config.Prefix, "/")

	clientConfig := api.DefaultConfig()
	clientConfig.Address = config.Address
	if config.Token != "" {
		clientConfig.Token = config.Token
	}

	client, err := api.NewClient(clientConfig)
	if err != nil {
		return nil, err
	}

	return &ConsulStore{
		client: client,
		kv:     client.KV(),
		config: config,
	}, nil
}

func (*ConsulStore) Name() string {
	return "consul"
}

func (cs *ConsulStore) buildKey(entry history.Entry) string {
	return cs.config.Prefix + "/" + entry.Key()
}

func (cs *ConsulStore) Append(ctx context.Context, entry history.Entry) error {
	value, err := entry.Marshal()
	if err != nil {
		return err
	}

	pair := &api.KVPair{
		Key:   cs.buildKey(entry),
		Value: value,
	}

	_, err = cs.kv.Put(pair, (&api.WriteOptions{}).WithContext(ctx))
	return err
}

func (cs *ConsulStore) List(ctx context.Context, limit int) ([]history.Entry, error) {
	pairs, _, err := cs.kv.List(cs.config.Prefix+"/", (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return nil, err
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].Key < pairs[j].Key
	})

	entries := make([]history.Entry, 0, len(pairs))
	for _, pair := range pairs {
		entry, err := history.Unmarshal(pair.Value)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return history.Tail(entries, limit), nil
}

func (cs *ConsulStore) Close() error {
	return nil
}
