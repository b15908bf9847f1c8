package services

// RunOptimistic aplica a disciplina otimista num unico lugar:
// aplica local, tenta persistir, reverte exatamente ao estado
// capturado se a persistencia falhar. Timeout conta como falha.
func RunOptimistic(apply func(), persist func() error, revert func()) error {
	apply()
	if err := persist(); err != nil {
		revert()
		return err
	}
	return nil
}
