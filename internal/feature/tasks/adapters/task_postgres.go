// Package adapters はtasksフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	projectentity "taskboard_backend/internal/feature/projects/domain/entity"
	"taskboard_backend/internal/feature/tasks/domain/entity"
	"taskboard_backend/internal/feature/tasks/usecase"
	"taskboard_backend/internal/shared/ownership"
)

// taskPostgres はTaskRepositoryインターフェースのPostgres実装です。
// ランク操作（採番・移動時のシフト）はすべて単一トランザクション内で実行します。
type taskPostgres struct {
	db *gorm.DB
}

// taskPostgresがTaskRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.TaskRepository = (*taskPostgres)(nil)

// NewTaskPostgres は指定されたgorm.DB接続でtaskPostgresの新しいインスタンスを生成します。
func NewTaskPostgres(db *gorm.DB) *taskPostgres {
	return &taskPostgres{db: db}
}

// projectOwnedTx はプロジェクトの存在と所有権を検証します。
// 存在しない場合と他ユーザー所有の場合は区別せずErrProjectNotFoundを返します。
func projectOwnedTx(tx *gorm.DB, userID, projectID uint) error {
	var project projectentity.Project
	if err := tx.Select("id", "owner_id").First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usecase.ErrProjectNotFound
		}
		return err
	}
	if err := ownership.Authorize(userID, project.OwnerID); err != nil {
		return usecase.ErrProjectNotFound
	}
	return nil
}

// findOwnedTx はタスクを取得し、親プロジェクト経由で所有権を検証します。
// タスク不在と所有権なしはどちらもErrTaskNotFoundになります。
func findOwnedTx(tx *gorm.DB, userID, taskID uint) (*entity.Task, error) {
	var task entity.Task
	if err := tx.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTaskNotFound
		}
		return nil, err
	}
	if err := projectOwnedTx(tx, userID, task.ProjectID); err != nil {
		return nil, usecase.ErrTaskNotFound
	}
	return &task, nil
}

// Insert は新しいタスクを初期カラムの末尾に追加します。
// パーティション内の最大ランク+1（空なら0）をトランザクション内で採番します。
func (r *taskPostgres) Insert(ctx context.Context, userID uint, task *entity.Task) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := projectOwnedTx(tx, userID, task.ProjectID); err != nil {
			return err
		}

		task.Status = entity.InitialStatus

		var next int64
		if err := tx.Model(&entity.Task{}).
			Where("project_id = ? AND status = ?", task.ProjectID, task.Status).
			Select("COALESCE(MAX(rank), -1) + 1").
			Scan(&next).Error; err != nil {
			return err
		}
		task.Rank = int(next)

		return tx.Create(task).Error
	})
}

// FindOwned は所有権を検証した上でタスクを取得します。
func (r *taskPostgres) FindOwned(ctx context.Context, userID, taskID uint) (*entity.Task, error) {
	return findOwnedTx(r.db.WithContext(ctx), userID, taskID)
}

// ListByProject は所有プロジェクトの全タスクをランク昇順で返します。
func (r *taskPostgres) ListByProject(ctx context.Context, userID, projectID uint) ([]entity.Task, error) {
	db := r.db.WithContext(ctx)
	if err := projectOwnedTx(db, userID, projectID); err != nil {
		return nil, err
	}

	var tasks []entity.Task
	if err := db.Where("project_id = ?", projectID).
		Order("rank ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateFields はタイトル・説明の部分更新を行います。ステータスとランクは変更しません。
func (r *taskPostgres) UpdateFields(ctx context.Context, userID, taskID uint, title, description *string) (*entity.Task, error) {
	var updated *entity.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := findOwnedTx(tx, userID, taskID)
		if err != nil {
			return err
		}

		fields := map[string]interface{}{}
		if title != nil {
			fields["title"] = *title
			task.Title = *title
		}
		if description != nil {
			fields["description"] = *description
			task.Description = *description
		}
		if len(fields) > 0 {
			if err := tx.Model(task).Updates(fields).Error; err != nil {
				return err
			}
		}
		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Move はタスクを対象カラムの指定ランクへ移動します。
// 手順（すべて同一トランザクション内）:
//  1. 移動元パーティションで元ランクより上のタスクを1つ詰める
//  2. 移動先パーティションで対象ランク以降のタスクを1つ空ける
//  3. 移動タスク自身のステータスとランクを書き込む
//
// これにより(project, status)パーティション内のランク重複は発生しません。
func (r *taskPostgres) Move(ctx context.Context, userID, taskID uint, target *entity.Status, rank int) (*entity.Task, error) {
	var moved entity.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := findOwnedTx(tx, userID, taskID)
		if err != nil {
			return err
		}

		dest := task.Status
		if target != nil {
			dest = *target
		}

		// 移動元の隙間を詰める
		if err := tx.Model(&entity.Task{}).
			Where("project_id = ? AND status = ? AND rank > ? AND id <> ?",
				task.ProjectID, task.Status, task.Rank, task.ID).
			UpdateColumn("rank", gorm.Expr("rank - 1")).Error; err != nil {
			return err
		}

		// 移動先に挿入位置を空ける
		if err := tx.Model(&entity.Task{}).
			Where("project_id = ? AND status = ? AND rank >= ? AND id <> ?",
				task.ProjectID, dest, rank, task.ID).
			UpdateColumn("rank", gorm.Expr("rank + 1")).Error; err != nil {
			return err
		}

		if err := tx.Model(task).
			Updates(map[string]interface{}{"status": dest, "rank": rank}).Error; err != nil {
			return err
		}

		task.Status = dest
		task.Rank = rank
		moved = *task
		return nil
	})
	if err != nil {
		return nil, translateMoveError(err)
	}
	return &moved, nil
}

// Delete はタスクを削除します。残った兄弟タスクのランクは詰め直しません。
func (r *taskPostgres) Delete(ctx context.Context, userID, taskID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := findOwnedTx(tx, userID, taskID)
		if err != nil {
			return err
		}
		return tx.Delete(task).Error
	})
}

// translateMoveError はドライバのシリアライズ失敗・デッドロック・ロック取得失敗を
// ErrMoveConflictへ変換します。それ以外のエラーはそのまま返します。
func translateMoveError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "55P03":
			return usecase.ErrMoveConflict
		}
	}
	return err
}
