package repository_test

import (
	"context"
	"sync"

	"github.com/soumyadeepdutta/tamperproof-users/internal/domain/proof"
	"github.com/soumyadeepdutta/tamperproof-users/internal/infrastructure/gateway"
)

// fakeStore records every statement and answers from scripted queues.
type fakeStore struct {
	mu         sync.Mutex
	executed   []gateway.Statement
	queried    []gateway.Statement
	execResult []execReply
	queryReply []queryReply
}

type execReply struct {
	res gateway.ExecResult
	err error
}

type queryReply struct {
	res gateway.QueryResult
	err error
}

func (f *fakeStore) Execute(ctx context.Context, stmt gateway.Statement) (gateway.ExecResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.executed = append(f.executed, stmt)
	if len(f.execResult) == 0 {
		return gateway.ExecResult{AffectedRows: 1, Proof: proof.Proof{Verified: true, TransactionID: "tx-1"}}, nil
	}
	r := f.execResult[0]
	f.execResult = f.execResult[1:]
	return r.res, r.err
}

func (f *fakeStore) Query(ctx context.Context, stmt gateway.Statement) (gateway.QueryResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.queried = append(f.queried, stmt)
	if len(f.queryReply) == 0 {
		return gateway.QueryResult{}, nil
	}
	r := f.queryReply[0]
	f.queryReply = f.queryReply[1:]
	return r.res, r.err
}
