// Package classifier implements binary logistic regression with an L2
// penalty, together with the ROC-AUC and accuracy metrics used to evaluate
// it.
//
// The objective is
//
//	0.5*||w||^2 + C * sum_i log(1 + exp(-s_i * (w.x_i + b)))
//
// where s_i is +1 for label 1 and -1 for label 0. The intercept b is not
// penalised. It is minimised with gonum's L-BFGS starting from zero, so a
// given training set always produces the same coefficients.
package classifier
