/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package status folds the observed children of an MPIJob into its status
// and recovers the names of children that already exist.
//
// Kinds with several observed objects are folded in ascending name order, so
// the last name wins. The sync hook only ever creates one object per kind;
// more than one is logged as a warning.
package status

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-logr/logr"
	appsv1 "k8s.io/api/apps/v1"
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	"sigs.k8s.io/controller-runtime/pkg/log"

	mpiv1alpha1 "github.com/numtide/mpi-operator/api/v1alpha1"
	"github.com/numtide/mpi-operator/pkg/names"
)

// Result is the outcome of Aggregate.
type Result struct {
	// Status is the status to report for the MPIJob.
	Status mpiv1alpha1.MPIJobStatus

	// Observed are the names recovered from existing children.
	Observed names.Observed
}

// Aggregate computes the MPIJob status from its observed children. Missing
// kinds contribute nothing. An observed Job or StatefulSet that cannot be
// decoded is an error.
func Aggregate(ctx context.Context, children mpiv1alpha1.ObservedChildren) (Result, error) {
	logger := log.FromContext(ctx)
	var res Result

	configs := children.Names(mpiv1alpha1.ConfigMapKindTag)
	warnIfMultiple(logger, "ConfigMap", configs)
	if len(configs) > 0 {
		res.Observed.Config = configs[len(configs)-1]
	}

	launchers := children.Names(mpiv1alpha1.JobKindTag)
	warnIfMultiple(logger, "Job", launchers)
	for _, name := range launchers {
		var job batchv1.Job
		if err := decode(children, mpiv1alpha1.JobKindTag, name, &job); err != nil {
			return Result{}, err
		}
		FoldLauncherStatus(&res.Status.Job, &job.Status)
		res.Observed.Launcher = name
	}

	workers := children.Names(mpiv1alpha1.StatefulSetKindTag)
	warnIfMultiple(logger, "StatefulSet", workers)
	for _, name := range workers {
		base, ok := names.BaseNameFromWorker(name)
		if !ok {
			logger.V(1).Info("Ignoring StatefulSet without worker suffix", "name", name)
			continue
		}
		var sts appsv1.StatefulSet
		if err := decode(children, mpiv1alpha1.StatefulSetKindTag, name, &sts); err != nil {
			return Result{}, err
		}
		res.Observed.Base = base
		res.Status.CurrentReplicas = sts.Status.CurrentReplicas
		res.Status.ReadyReplicas = sts.Status.ReadyReplicas
		res.Status.Replicas = sts.Status.Replicas
	}

	return res, nil
}

// FoldLauncherStatus updates s with the status of one launcher Job. An active
// pod marks the launcher Running. Each condition then overwrites the state in
// turn: a true Complete or Failed condition finishes it, any other condition
// puts it back to Running. The type of the last condition becomes s.Status.
func FoldLauncherStatus(s *mpiv1alpha1.LauncherStatus, job *batchv1.JobStatus) {
	if job.Active == 1 {
		s.State = mpiv1alpha1.LauncherStateRunning
		s.Success = mpiv1alpha1.LauncherResultUnknown
		s.Status = string(mpiv1alpha1.LauncherResultUnknown)
	}

	for _, cond := range job.Conditions {
		if isFinished(cond) {
			s.State = mpiv1alpha1.LauncherStateFinished
			s.Success = mpiv1alpha1.LauncherResultFailed
			if job.Succeeded == 1 {
				s.Success = mpiv1alpha1.LauncherResultSucceeded
			}
		} else {
			s.State = mpiv1alpha1.LauncherStateRunning
			s.Success = mpiv1alpha1.LauncherResultUnknown
		}
		s.Status = string(cond.Type)
	}
}

func isFinished(cond batchv1.JobCondition) bool {
	return (cond.Type == batchv1.JobComplete || cond.Type == batchv1.JobFailed) &&
		cond.Status == corev1.ConditionTrue
}

func decode(children mpiv1alpha1.ObservedChildren, kindTag, name string, into any) error {
	raw, _ := children.Get(kindTag, name)
	if err := json.Unmarshal(raw, into); err != nil {
		return fmt.Errorf("failed to decode observed %s %q: %w", kindTag, name, err)
	}
	return nil
}

func warnIfMultiple(logger logr.Logger, kind string, found []string) {
	if len(found) > 1 {
		logger.Info("Multiple observed children of one kind, using the last",
			"kind", kind, "names", found, "using", found[len(found)-1])
	}
}
