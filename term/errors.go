// Package term implements a hash-consed DAG of lambda-calculus term nodes
// with bottom-up analyses (free de Bruijn variables, free invention
// variables, inventionless symbolic cost), following the structural-hashing
// term store of the invention-search design.
//
// Errors:
//
//	ErrInvalidNodeId    - a NodeId not produced by this Store was used.
//	ErrFreeVarsInRoot    - Programs() received a child with non-empty free_vars.
//	ErrFreeIVarsInRoot   - Programs() received a child with non-empty free_ivars.
//	ErrIVarInCorpus      - an IVar node reached a context where the corpus must
//	                       be IVar-free (bubbling, ingestion).
package term

import "errors"

// Sentinel errors for term store operations.
var (
	// ErrInvalidNodeId indicates a NodeId unknown to this Store was dereferenced.
	ErrInvalidNodeId = errors.New("term: invalid node id")

	// ErrFreeVarsInRoot indicates a Programs() child has free de Bruijn variables.
	ErrFreeVarsInRoot = errors.New("term: program root has free variables")

	// ErrFreeIVarsInRoot indicates a Programs() child has free invention variables.
	ErrFreeIVarsInRoot = errors.New("term: program root has free invention variables")

	// ErrIVarInCorpus indicates an IVar node was found where the corpus must be
	// invention-variable free.
	ErrIVarInCorpus = errors.New("term: unexpected invention variable in corpus")

	// ErrNotApp / ErrNotLam / ErrNotPrim / ErrNotProgram guard accessor misuse.
	ErrNotApp     = errors.New("term: node is not an App")
	ErrNotLam     = errors.New("term: node is not a Lam")
	ErrNotPrim    = errors.New("term: node is not a Prim")
	ErrNotProgram = errors.New("term: node is not a Programs root")
)
