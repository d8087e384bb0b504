// Package entropy computes information-theoretic statistics over partitions
// of a stock-returns panel.
//
// For every partition the engine produces four scalars from the past and
// future return-horizon blocks: the sample standard deviation of the
// shortest past horizon (dispersion), the differential entropy of the past
// block, the conditional entropy of the future block given the past
// (via the chain rule: H(XY) - H(X)), and the normalized mutual information
// between the two blocks.
//
// The entropy and mutual information estimates come from an Estimator
// collaborator. The default is a Kozachenko-Leonenko k-nearest-neighbor
// estimator; its numerical behavior on small or degenerate partitions
// (bias, estimation failure) is inherited rather than corrected. Estimator
// failures never abort a run: the affected statistic is recorded as NaN and
// the failure is counted on the result set.
package entropy
