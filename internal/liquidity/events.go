package liquidity

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"tokenscan/internal/chaincfg"
	"tokenscan/internal/domain"
	"tokenscan/internal/probe"
	"tokenscan/internal/rpcpool"
)

// eventStrategy scans PairCreated logs emitted by the V2 factories. It
// catches pairs against quote assets the direct lookup does not try, at the
// cost of depending on the endpoint's log retention.
type eventStrategy struct {
	chain  *chaincfg.Chain
	caller rpcpool.Caller
}

func (s *eventStrategy) Name() string { return "events" }

type logEntry struct {
	Address string   `json:"address"`
	Topics  []string `json:"topics"`
	Data    string   `json:"data"`
}

func (s *eventStrategy) Discover(ctx context.Context, token common.Address) ([]*domain.Venue, int) {
	var venues []*domain.Venue
	checked := 0

	tokenTopic := common.BytesToHash(token.Bytes()).Hex()
	for _, factory := range s.chain.Factories {
		if factory.V2 == (common.Address{}) {
			continue
		}
		// The token can sit on either side of the pair.
		topicSets := [][]interface{}{
			{probe.PairCreatedTopic, tokenTopic},
			{probe.PairCreatedTopic, nil, tokenTopic},
		}
		for _, topics := range topicSets {
			checked++
			for _, entry := range s.fetchLogs(ctx, factory.V2, topics) {
				pair, quote, ok := parsePairCreated(token, entry)
				if !ok {
					continue
				}
				if v := buildV2Venue(ctx, s.caller, s.chain, factory.Name, pair, token, quote); v != nil {
					v.Evidence = append(v.Evidence, fmt.Sprintf("PairCreated log from factory %s", factory.V2.Hex()))
					venues = append(venues, v)
				}
			}
		}
	}
	return venues, checked
}

func (s *eventStrategy) fetchLogs(ctx context.Context, factory common.Address, topics []interface{}) []logEntry {
	params := []interface{}{
		map[string]interface{}{
			"address":   factory.Hex(),
			"topics":    topics,
			"fromBlock": "0x0",
			"toBlock":   "latest",
		},
	}
	cacheKey := fmt.Sprintf("logs:%s:%v", factory.Hex(), topics)
	res, err := s.caller.Call(ctx, "eth_getLogs", params, cacheKey)
	if err != nil || !res.Success {
		return nil
	}
	var entries []logEntry
	if err := json.Unmarshal(res.Data, &entries); err != nil {
		return nil
	}
	return entries
}

// parsePairCreated extracts the pair address (first data word) and the quote
// side (whichever indexed token is not the scanned one).
func parsePairCreated(token common.Address, entry logEntry) (pair, quote common.Address, ok bool) {
	if len(entry.Topics) < 3 {
		return common.Address{}, common.Address{}, false
	}
	pair, ok = probe.DecodeAddress(entry.Data)
	if !ok || pair == (common.Address{}) {
		return common.Address{}, common.Address{}, false
	}
	token0 := common.HexToAddress(entry.Topics[1])
	token1 := common.HexToAddress(entry.Topics[2])
	switch token {
	case token0:
		return pair, token1, true
	case token1:
		return pair, token0, true
	default:
		return common.Address{}, common.Address{}, false
	}
}
